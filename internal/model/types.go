// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TextPath     string
	VocabPath    string
	HighFreqPath string
}

// StatsConfig defines filters for the stats report. Window limits the
// hardest-words aggregation to the most recent runs; 0 aggregates them all.
type StatsConfig struct {
	Source string
	Last   int
	Window int
}

// RunStats captures a completed practice run.
type RunStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Source     string
	Sentences  int
	StartIndex int
	EndIndex   int
	Correct    int
	Incorrect  int
}

// WordStat stores per-word attempt counts for a run.
type WordStat struct {
	Word      string
	Correct   int
	Incorrect int
}

// WordAggregate aggregates word stats across runs.
type WordAggregate struct {
	Word      string
	Correct   int
	Incorrect int
}

// RunAggregate summarizes a run for reporting.
type RunAggregate struct {
	RunID     int64
	EndedAt   time.Time
	Source    string
	Correct   int
	Incorrect int
}
