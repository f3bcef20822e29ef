package ports

import "time"

// RunRecord is one finished orchestration run.
type RunRecord struct {
	ID         int64
	Article    string
	Folder     string
	Files      int
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunLedger persists finished runs for later inspection.
type RunLedger interface {
	Record(rec *RunRecord) error
	List(limit int) ([]RunRecord, error)
	Close() error
}
