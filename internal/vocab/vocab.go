// Package vocab persists per-user vocabulary mastery and decides which
// words in a caption block playback until acknowledged.
package vocab

import (
	"fmt"
	"strings"
	"time"
)

// Level is a CEFR difficulty tier.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

var levelRanks = map[Level]int{
	LevelA1: 1,
	LevelA2: 2,
	LevelB1: 3,
	LevelB2: 4,
	LevelC1: 5,
	LevelC2: 6,
}

// ParseLevel validates a user-supplied CEFR level.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelRanks[level]; !ok {
		return "", fmt.Errorf("unknown CEFR level %q: use A1-C2", s)
	}
	return level, nil
}

// Rank orders levels from A1 (1) to C2 (6). Unknown levels rank 0.
func (l Level) Rank() int {
	return levelRanks[l]
}

// Status tracks a learner's progress on a single word.
type Status string

const (
	StatusNew      Status = "new"
	StatusLearning Status = "learning"
	StatusKnown    Status = "known"
)

// ParseStatus validates a user-supplied status string.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case StatusNew, StatusLearning, StatusKnown:
		return status, nil
	default:
		return "", fmt.Errorf(
			"unknown status %q: use new, learning, or known",
			s,
		)
	}
}

// Word is one tracked vocabulary item.
type Word struct {
	ID        int64
	Word      string
	Language  string
	Level     Level
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter narrows List queries. Zero fields match everything.
type Filter struct {
	Language string
	Level    Level
	Status   Status
}
