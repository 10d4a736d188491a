package database

import "time"

// Run states.
const (
	// StateActive means the row is still being processed.
	StateActive = "active"

	// StateDone means the row was processed successfully.
	StateDone = "done"

	// StateFailed means processing the row failed.
	StateFailed = "failed"
)

// Run is one ledger entry: the processing of one table row by one
// pipeline.
type Run struct {
	// ID is the unique identifier of the run.
	ID string

	// Pipeline is the pipeline name (e.g., "phonation").
	Pipeline string

	// TableID is the ID of the remote table we read the row from.
	TableID string

	// RowIndex is the index of the row within the table.
	RowIndex int64

	// SourceFile is the local path of the downloaded attached file.
	SourceFile string

	// FeatureTable is the local path of the feature table we wrote.
	FeatureTable string

	// State is one of [StateActive], [StateDone], [StateFailed].
	State string

	// Failure is the failure string, empty on success.
	Failure string

	// StartTime is when we started processing the row.
	StartTime time.Time

	// Runtime is the fractional number of seconds we spent on the row.
	Runtime float64
}
