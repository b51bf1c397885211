package recorder

import "time"

// RunEvent holds the outcome of one ingest run.
type RunEvent struct {
	RunID              string
	Symbol             string
	StartDate          string
	EndDate            string
	FetchStatus        string // "written", "empty" or "failed"
	Rows               int
	FetchError         string
	InstructionsStatus string // "written" or "failed"
	StartedAt          time.Time
	FinishedAt         time.Time
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	Close() error
}
