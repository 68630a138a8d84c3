package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/verte-zerg/sylla/internal/model"
)

// CreateTopics inserts topics under a subject and returns the stored rows
// with their assigned IDs and timestamps. The subject must exist.
func (s *Store) CreateTopics(ctx context.Context, subjectID int64, topics []model.Topic) ([]model.Topic, error) {
	if err := s.requireSubject(ctx, subjectID); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	now := s.now()
	created := make([]model.Topic, 0, len(topics))
	for _, topic := range topics {
		status := topic.Status
		if status == "" {
			status = model.TopicNotStarted
		}
		var res sql.Result
		res, err = tx.ExecContext(ctx,
			`INSERT INTO topics (subject_id, name, status, difficulty, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			subjectID, topic.Name, string(status), string(topic.Difficulty), formatTime(now),
		)
		if err != nil {
			return nil, err
		}
		var topicID int64
		if topicID, err = res.LastInsertId(); err != nil {
			return nil, err
		}
		created = append(created, model.Topic{
			ID:         topicID,
			SubjectID:  subjectID,
			Name:       topic.Name,
			Status:     status,
			Difficulty: topic.Difficulty,
			CreatedAt:  now,
		})
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// GetTopic returns one topic or model.ErrNotFound.
func (s *Store) GetTopic(ctx context.Context, topicID int64) (model.Topic, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, subject_id, name, status, difficulty, created_at
		 FROM topics WHERE id = ?`, topicID)
	topic, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Topic{}, model.ErrNotFound
	}
	return topic, err
}

// ListTopics returns a subject's topics in creation order.
func (s *Store) ListTopics(ctx context.Context, subjectID int64) ([]model.Topic, error) {
	return s.queryTopics(ctx,
		`SELECT id, subject_id, name, status, difficulty, created_at
		 FROM topics WHERE subject_id = ? ORDER BY id`, subjectID)
}

// ListAllTopics returns every topic across all subjects.
func (s *Store) ListAllTopics(ctx context.Context) ([]model.Topic, error) {
	return s.queryTopics(ctx,
		`SELECT id, subject_id, name, status, difficulty, created_at
		 FROM topics ORDER BY id`)
}

// UpdateTopicStatus sets a topic's mastery status.
func (s *Store) UpdateTopicStatus(ctx context.Context, topicID int64, status model.TopicStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE topics SET status = ? WHERE id = ?`, string(status), topicID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// DeleteTopic removes a topic. Sessions that referenced it keep their
// subject but lose the topic reference.
func (s *Store) DeleteTopic(ctx context.Context, topicID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE sessions SET topic_id = NULL WHERE topic_id = ?`, topicID); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, topicID); err != nil {
		return err
	}
	if err = requireRowAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) queryTopics(ctx context.Context, query string, args ...any) ([]model.Topic, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var topics []model.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return topics, nil
}

func (s *Store) requireSubject(ctx context.Context, subjectID int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM subjects WHERE id = ?`, subjectID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func scanTopic(row rowScanner) (model.Topic, error) {
	var topic model.Topic
	var status, difficulty, createdAt string
	if err := row.Scan(&topic.ID, &topic.SubjectID, &topic.Name, &status, &difficulty, &createdAt); err != nil {
		return model.Topic{}, err
	}
	topic.Status = model.TopicStatus(status)
	topic.Difficulty = model.Difficulty(difficulty)
	var err error
	if topic.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Topic{}, err
	}
	return topic, nil
}
