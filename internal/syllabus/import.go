package syllabus

import (
	"context"
	"strings"

	"github.com/verte-zerg/sylla/internal/model"
)

// ParsedTopic is one topic produced by the external AI syllabus parser.
type ParsedTopic struct {
	Name       string
	Difficulty model.Difficulty
}

// AiParser extracts topics with difficulty ratings from a syllabus file.
// It is an external collaborator; implementations live outside this module.
type AiParser interface {
	ParseFile(ctx context.Context, path string) ([]ParsedTopic, error)
}

// TopicStore is the slice of the record store the importer needs.
type TopicStore interface {
	CreateTopics(ctx context.Context, subjectID int64, topics []model.Topic) ([]model.Topic, error)
}

// ImportTopics bulk-creates topics for a subject from parsed names. Blank
// names are dropped; when nothing survives a ValidationError is returned.
// The returned topics are the store's authoritative rows with assigned IDs,
// never locally fabricated ones.
func ImportTopics(ctx context.Context, st TopicStore, subjectID int64, names []string) ([]model.Topic, error) {
	topics := make([]model.Topic, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		topics = append(topics, model.Topic{SubjectID: subjectID, Name: name})
	}
	if len(topics) == 0 {
		return nil, &model.ValidationError{Msg: "no valid topic names found"}
	}
	return st.CreateTopics(ctx, subjectID, topics)
}

// ImportParsedTopics stores topics returned by the AI parser, keeping the
// difficulty ratings. The same blank-name and empty-result rules apply.
func ImportParsedTopics(ctx context.Context, st TopicStore, subjectID int64, parsed []ParsedTopic) ([]model.Topic, error) {
	topics := make([]model.Topic, 0, len(parsed))
	for _, p := range parsed {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}
		topics = append(topics, model.Topic{SubjectID: subjectID, Name: name, Difficulty: p.Difficulty})
	}
	if len(topics) == 0 {
		return nil, &model.ValidationError{Msg: "no valid topic names found"}
	}
	return st.CreateTopics(ctx, subjectID, topics)
}
