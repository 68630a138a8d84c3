package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/verte-zerg/sylla/internal/model"
)

// DefaultSubjectColor is used when no color is provided.
const DefaultSubjectColor = "#2563EB"

// CreateSubject inserts a subject and returns it with its assigned ID.
func (s *Store) CreateSubject(ctx context.Context, name, description, color string) (model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Subject{}, &model.ValidationError{Msg: "subject name must not be empty"}
	}
	if color == "" {
		color = DefaultSubjectColor
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (name, description, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		name, description, color, formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.Subject{}, err
	}
	subjectID, err := res.LastInsertId()
	if err != nil {
		return model.Subject{}, err
	}
	return model.Subject{
		ID:          subjectID,
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetSubject returns one subject or model.ErrNotFound.
func (s *Store) GetSubject(ctx context.Context, subjectID int64) (model.Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, color, created_at, updated_at
		 FROM subjects WHERE id = ?`, subjectID)
	subject, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subject{}, model.ErrNotFound
	}
	return subject, err
}

// GetSubjectByName returns the first subject with the given name or model.ErrNotFound.
func (s *Store) GetSubjectByName(ctx context.Context, name string) (model.Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, color, created_at, updated_at
		 FROM subjects WHERE name = ? ORDER BY id LIMIT 1`, name)
	subject, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subject{}, model.ErrNotFound
	}
	return subject, err
}

// ListSubjects returns all subjects, newest first.
func (s *Store) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, color, created_at, updated_at
		 FROM subjects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var subjects []model.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subjects, nil
}

// UpdateSubject rewrites a subject's mutable fields.
func (s *Store) UpdateSubject(ctx context.Context, subject model.Subject) error {
	if strings.TrimSpace(subject.Name) == "" {
		return &model.ValidationError{Msg: "subject name must not be empty"}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET name = ?, description = ?, color = ?, updated_at = ? WHERE id = ?`,
		subject.Name, subject.Description, subject.Color, formatTime(s.now()), subject.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// DeleteSubject removes a subject and its topics. Session history survives:
// references to the deleted subject and its topics are nulled out.
func (s *Store) DeleteSubject(ctx context.Context, subjectID int64) error {
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
		`UPDATE sessions SET subject_id = NULL, topic_id = NULL WHERE subject_id = ?`, subjectID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM topics WHERE subject_id = ?`, subjectID); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, subjectID); err != nil {
		return err
	}
	if err = requireRowAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (model.Subject, error) {
	var subject model.Subject
	var createdAt, updatedAt string
	if err := row.Scan(&subject.ID, &subject.Name, &subject.Description, &subject.Color, &createdAt, &updatedAt); err != nil {
		return model.Subject{}, err
	}
	var err error
	if subject.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Subject{}, err
	}
	if subject.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Subject{}, err
	}
	return subject, nil
}

func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}
