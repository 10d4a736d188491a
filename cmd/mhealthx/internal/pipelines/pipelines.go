// Package pipelines contains the end-to-end feature extraction
// sequences: query a remote table, download the attached files, run
// the extractors, and reassemble the results into feature tables.
package pipelines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/database"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/synapse"
	"github.com/mhealthx/extract-cli/internal/table"
)

// ErrNoAttachedFile indicates the table row has no attached file.
var ErrNoAttachedFile = errors.New("pipelines: row has no attached file")

// Pipeline turns one downloaded file into one feature row.
type Pipeline interface {
	// Name returns the pipeline name.
	Name() string

	// ProcessFile extracts features from the given local file.
	ProcessFile(ctx context.Context, ctl *Controller, sourceFile string) (*table.Row, error)
}

// Controller runs a pipeline over every row of a remote table.
//
// The zero value is invalid; initialize the MANDATORY fields.
type Controller struct {
	// Client is the MANDATORY remote service client.
	Client *synapse.Client

	// DB is the MANDATORY runs ledger.
	DB *sql.DB

	// Logger is the MANDATORY logger to use.
	Logger model.Logger

	// CacheDir is the MANDATORY directory receiving downloads.
	CacheDir string

	// TableStem is the MANDATORY path stem of the feature tables.
	TableStem string

	// SaveRows makes every row go to its own CSV file rather than
	// being appended to the shared feature table.
	SaveRows bool

	// Upload makes us push the feature table back to the service.
	Upload bool

	// ProjectID is the service project receiving uploaded tables.
	// MANDATORY when Upload is true.
	ProjectID string
}

// Result summarizes a pipeline run.
type Result struct {
	// Done counts the rows processed successfully.
	Done int

	// Failed counts the rows that failed.
	Failed int

	// Tables lists the local feature table files we wrote.
	Tables []string

	// UploadedTableID is the ID of the remote table we created,
	// empty when uploading was disabled.
	UploadedTableID string
}

// Run processes every row of the given remote table with the given
// pipeline, reading the attached files from the named file-handle
// column. A limit of zero processes every row.
//
// A failed row is logged, recorded in the ledger, persisted as a null
// feature row, and processing continues with the next row.
func (ctl *Controller) Run(ctx context.Context, pipe Pipeline,
	tableID, columnName string, limit int64) (*Result, error) {
	ctl.Logger.Infof("querying table %s", tableID)
	tbl, downloaded, err := ctl.Client.DownloadTableFiles(
		ctx, tableID, []string{columnName}, limit, ctl.CacheDir)
	if err != nil {
		return nil, err
	}
	sourceFiles := downloaded[0]

	result := &Result{}
	written := make(map[string]bool)
	var featureHeader []string
	for idx := range tbl.Rows {
		row, err := tbl.Row(idx)
		if err != nil {
			return nil, err
		}
		run := &database.Run{
			Pipeline:   pipe.Name(),
			TableID:    tableID,
			RowIndex:   int64(idx),
			SourceFile: sourceFiles[idx],
		}
		if err := database.CreateRun(ctl.DB, run); err != nil {
			return nil, err
		}

		featRow, err := ctl.processRow(ctx, pipe, sourceFiles[idx])
		ctl.Logger.Infof("row %d of %s: %s", idx, tableID, model.ErrorToStringOrOK(err))
		if err != nil {
			result.Failed++
			featRow = nullRow(featureHeader)
			if persistErr := ctl.persistRow(row, featRow, sourceFiles[idx], run, written, result); persistErr != nil {
				return nil, persistErr
			}
			if err := database.Failed(ctl.DB, run, err.Error()); err != nil {
				return nil, err
			}
			continue
		}
		featureHeader = featRow.Header
		result.Done++
		if err := ctl.persistRow(row, featRow, sourceFiles[idx], run, written, result); err != nil {
			return nil, err
		}
		if err := database.Finished(ctl.DB, run); err != nil {
			return nil, err
		}
	}

	if ctl.Upload {
		uploadedID, err := ctl.uploadTables(ctx, pipe, result.Tables)
		if err != nil {
			return nil, err
		}
		result.UploadedTableID = uploadedID
	}
	return result, nil
}

// processRow runs the pipeline on one source file.
func (ctl *Controller) processRow(ctx context.Context, pipe Pipeline,
	sourceFile string) (*table.Row, error) {
	if sourceFile == "" {
		return nil, ErrNoAttachedFile
	}
	return pipe.ProcessFile(ctx, ctl, sourceFile)
}

// persistRow writes the merged row to the feature table: one CSV per
// row when SaveRows is set, otherwise appended to the shared table.
// The original row values come first, unaltered.
func (ctl *Controller) persistRow(row, featRow *table.Row,
	sourceFile string, run *database.Run, written map[string]bool, result *Result) error {
	merged := row.Merge(featRow)
	var path string
	if ctl.SaveRows {
		name := filepath.Base(sourceFile)
		if sourceFile == "" {
			name = fmt.Sprintf("row_%d", run.RowIndex)
		}
		path = fmt.Sprintf("%s_%s.csv", ctl.TableStem, name)
		if err := merged.WriteRowCSV(path, ','); err != nil {
			return err
		}
	} else {
		path = ctl.TableStem + ".csv"
		if err := table.AppendRowToFile(path, merged, ','); err != nil {
			return err
		}
	}
	run.FeatureTable = path
	if !written[path] {
		written[path] = true
		result.Tables = append(result.Tables, path)
	}
	return nil
}

// uploadTables pushes the feature tables back to the service: the
// shared table is stored as a new remote table, while per-row files
// are uploaded and referenced from a one-column table.
func (ctl *Controller) uploadTables(ctx context.Context, pipe Pipeline,
	paths []string) (string, error) {
	if len(paths) <= 0 {
		ctl.Logger.Info("nothing to upload")
		return "", nil
	}
	tableName := pipe.Name() + "_features"
	if ctl.SaveRows {
		ctl.Logger.Infof("uploading %d feature files", len(paths))
		return ctl.Client.FilesToTable(ctx, paths, ctl.ProjectID, tableName, "FEATURES")
	}
	ctl.Logger.Infof("uploading feature table %s", paths[0])
	tbl, err := table.ReadCSV(paths[0], ',')
	if err != nil {
		return "", err
	}
	return ctl.Client.StoreTable(ctx, ctl.ProjectID, tableName, tbl)
}

// nullRow returns a feature row with empty values, used for failed
// rows. Until the first row succeeds the feature header is unknown
// and the null row is empty.
func nullRow(header []string) *table.Row {
	return &table.Row{
		Header: header,
		Values: make([]string, len(header)),
	}
}
