package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/verte-zerg/sylla/internal/model"
)

// CreateSession persists a finished study interval. The record's CreatedAt
// is assigned by the store and is the timestamp all reporting buckets by.
func (s *Store) CreateSession(ctx context.Context, interval model.SessionInterval, subjectID, topicID *int64, notes string) (model.SessionRecord, error) {
	if interval.ElapsedSeconds <= 0 {
		return model.SessionRecord{}, &model.ValidationError{Msg: "session duration must be positive"}
	}
	if subjectID != nil {
		if err := s.requireSubject(ctx, *subjectID); err != nil {
			return model.SessionRecord{}, err
		}
	}
	if topicID != nil {
		topic, err := s.GetTopic(ctx, *topicID)
		if err != nil {
			return model.SessionRecord{}, err
		}
		if subjectID != nil && topic.SubjectID != *subjectID {
			return model.SessionRecord{}, &model.ValidationError{Msg: "topic does not belong to the selected subject"}
		}
	}

	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (subject_id, topic_id, start_time, end_time, duration_seconds, created_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullableID(subjectID), nullableID(topicID),
		formatTime(interval.StartTime), formatTime(interval.EndTime),
		interval.ElapsedSeconds, formatTime(now), notes,
	)
	if err != nil {
		return model.SessionRecord{}, err
	}
	sessionID, err := res.LastInsertId()
	if err != nil {
		return model.SessionRecord{}, err
	}
	return model.SessionRecord{
		ID:              sessionID,
		SubjectID:       subjectID,
		TopicID:         topicID,
		StartTime:       interval.StartTime,
		EndTime:         interval.EndTime,
		DurationSeconds: interval.ElapsedSeconds,
		CreatedAt:       now,
		Notes:           notes,
	}, nil
}

// ListSessions returns session records matching the filter, oldest first.
func (s *Store) ListSessions(ctx context.Context, filter model.SessionFilter) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	var args []any
	if filter.SubjectID != nil {
		clauses = append(clauses, "subject_id = ?")
		args = append(args, *filter.SubjectID)
	}
	if filter.SinceDays > 0 {
		cutoff := s.now().AddDate(0, 0, -filter.SinceDays)
		clauses = append(clauses, "created_at >= ?")
		args = append(args, formatTime(cutoff))
	}

	query := fmt.Sprintf(
		`SELECT id, subject_id, topic_id, start_time, end_time, duration_seconds, created_at, notes
		 FROM sessions WHERE %s ORDER BY created_at ASC, id ASC`,
		strings.Join(clauses, " AND "))
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

	var records []model.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteSession removes one session record.
func (s *Store) DeleteSession(ctx context.Context, sessionID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func scanSession(row rowScanner) (model.SessionRecord, error) {
	var record model.SessionRecord
	var subjectID, topicID sql.NullInt64
	var startTime, endTime, createdAt string
	if err := row.Scan(&record.ID, &subjectID, &topicID, &startTime, &endTime,
		&record.DurationSeconds, &createdAt, &record.Notes); err != nil {
		return model.SessionRecord{}, err
	}
	if subjectID.Valid {
		record.SubjectID = &subjectID.Int64
	}
	if topicID.Valid {
		record.TopicID = &topicID.Int64
	}
	var err error
	if record.StartTime, err = parseTime(startTime); err != nil {
		return model.SessionRecord{}, err
	}
	if record.EndTime, err = parseTime(endTime); err != nil {
		return model.SessionRecord{}, err
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.SessionRecord{}, err
	}
	return record, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
