// Package model defines shared data structures.
package model

import "time"

// Subject groups topics and study sessions under one course of study.
type Subject struct {
	ID          int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TopicStatus tracks how far a topic has progressed.
type TopicStatus string

// Topic progression states, cycled in order.
const (
	TopicNotStarted TopicStatus = "not_started"
	TopicInProgress TopicStatus = "in_progress"
	TopicMastered   TopicStatus = "mastered"
)

// Cycle advances to the next status: not_started, in_progress, mastered, and back.
func (s TopicStatus) Cycle() TopicStatus {
	switch s {
	case TopicNotStarted:
		return TopicInProgress
	case TopicInProgress:
		return TopicMastered
	default:
		return TopicNotStarted
	}
}

// Label returns the human-readable status name.
func (s TopicStatus) Label() string {
	switch s {
	case TopicMastered:
		return "Mastered"
	case TopicInProgress:
		return "In Progress"
	default:
		return "Not Started"
	}
}

// Color returns the display color for the status.
func (s TopicStatus) Color() string {
	switch s {
	case TopicMastered:
		return "#22C55E"
	case TopicInProgress:
		return "#F59E0B"
	default:
		return "#E2E8F0"
	}
}

// Difficulty is an estimated topic difficulty, empty when unrated.
type Difficulty string

// Difficulty levels as rated by the syllabus AI collaborator.
const (
	DifficultyUnrated Difficulty = ""
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
)

// Topic is a single unit of study inside a subject.
type Topic struct {
	ID         int64
	SubjectID  int64
	Name       string
	Status     TopicStatus
	Difficulty Difficulty
	CreatedAt  time.Time
}

// SessionInterval is one finalized span of tracked study time.
type SessionInterval struct {
	StartTime      time.Time
	EndTime        time.Time
	ElapsedSeconds int
}

// SessionRecord is a persisted study session. CreatedAt is store-assigned
// and is the timestamp used for all calendar-day bucketing.
type SessionRecord struct {
	ID              int64
	SubjectID       *int64
	TopicID         *int64
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int
	CreatedAt       time.Time
	Notes           string
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	SubjectID *int64
	SinceDays int
}
