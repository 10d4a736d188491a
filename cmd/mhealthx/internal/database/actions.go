package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CreateRun inserts a new active run into the ledger, assigning its ID
// and start time.
func CreateRun(db *sql.DB, run *Run) error {
	run.ID = uuid.NewString()
	run.State = StateActive
	run.StartTime = time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (
			id, pipeline, table_id, row_index, source_file,
			feature_table, state, failure, start_time, runtime
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		run.ID, run.Pipeline, run.TableID, run.RowIndex, run.SourceFile,
		run.FeatureTable, run.State, run.Failure, run.StartTime, run.Runtime)
	return errors.Wrap(err, "creating run")
}

// updateOne runs the given update query and checks it affected one row.
func updateOne(db *sql.DB, query string, args ...interface{}) error {
	res, err := db.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "updating runs table")
	}
	count, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating runs table")
	}
	if count != 1 {
		return errors.New("inconsistent update count")
	}
	return nil
}

// Finished marks the run as done and records its runtime.
func Finished(db *sql.DB, run *Run) error {
	if run.State != StateActive {
		return errors.New("run is not active")
	}
	run.State = StateDone
	run.Runtime = time.Since(run.StartTime).Seconds()
	return updateOne(db, `UPDATE runs SET state = ?, runtime = ?,
		feature_table = ? WHERE id = ?;`,
		run.State, run.Runtime, run.FeatureTable, run.ID)
}

// Failed marks the run as failed with the given failure string.
func Failed(db *sql.DB, run *Run, failure string) error {
	if run.State != StateActive {
		return errors.New("run is not active")
	}
	run.State = StateFailed
	run.Failure = failure
	run.Runtime = time.Since(run.StartTime).Seconds()
	return updateOne(db, `UPDATE runs SET state = ?, failure = ?,
		runtime = ?, feature_table = ? WHERE id = ?;`,
		run.State, run.Failure, run.Runtime, run.FeatureTable, run.ID)
}

// ListRuns returns every run in the ledger ordered by start time.
func ListRuns(db *sql.DB) ([]*Run, error) {
	rows, err := db.Query(`SELECT id, pipeline, table_id, row_index,
		source_file, feature_table, state, failure, start_time, runtime
		FROM runs ORDER BY start_time;`)
	if err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	defer rows.Close()
	runs := []*Run{}
	for rows.Next() {
		run := &Run{}
		err := rows.Scan(&run.ID, &run.Pipeline, &run.TableID,
			&run.RowIndex, &run.SourceFile, &run.FeatureTable,
			&run.State, &run.Failure, &run.StartTime, &run.Runtime)
		if err != nil {
			return nil, errors.Wrap(err, "scanning a run")
		}
		runs = append(runs, run)
	}
	return runs, errors.Wrap(rows.Err(), "listing runs")
}
