// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	File         string
	Clipboard    bool
	Paste        bool
	History      bool
	ContentWidth float64
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Since  *time.Time
	Last   int
	Window int
	Top    int
}

// SessionRecord captures a completed typing session for the history store.
type SessionRecord struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Source      string
	Chars       int
	Words       int
	ErrorEvents int
	Accuracy    float64
	WPM         float64
	DurationMs  int64
}

// CharRecord stores one per-character result of a stored session.
type CharRecord struct {
	Char    string
	Correct int
	Total   int
}

// CharAggregate aggregates character results across sessions.
type CharAggregate struct {
	Char    string
	Correct int
	Total   int
}
