package model

//
// Data structures spoken by the remote tabular data service. The wire
// format follows the Synapse repository services REST API, reduced to
// the subset this repository actually calls.
//

// SynapseColumn describes a column of a remote table.
type SynapseColumn struct {
	// ID is the column ID assigned by the service.
	ID string `json:"id,omitempty"`

	// Name is the column header.
	Name string `json:"name"`

	// ColumnType is one of "STRING", "DOUBLE", "INTEGER", "FILEHANDLEID".
	ColumnType string `json:"columnType"`
}

// SynapseColumnTypeString is the column type for string values.
const SynapseColumnTypeString = "STRING"

// SynapseColumnTypeFileHandleID is the column type for file handle IDs.
const SynapseColumnTypeFileHandleID = "FILEHANDLEID"

// SynapseTableSchema is the schema entity of a remote table.
type SynapseTableSchema struct {
	// ID is the table entity ID (e.g., "syn4590865").
	ID string `json:"id,omitempty"`

	// Name is the schema name.
	Name string `json:"name"`

	// ParentID is the project that owns the table.
	ParentID string `json:"parentId"`

	// Columns describes the table columns.
	Columns []SynapseColumn `json:"columns"`
}

// SynapseQueryRequest requests rows from a remote table.
type SynapseQueryRequest struct {
	// SQL is the query to run (e.g., "select * from syn4590865").
	SQL string `json:"sql"`

	// Limit optionally bounds the number of returned rows.
	Limit int64 `json:"limit,omitempty"`
}

// SynapseRow is a single row of a remote table.
type SynapseRow struct {
	// RowID is the row ID within the table.
	RowID int64 `json:"rowId"`

	// VersionNumber is the row version.
	VersionNumber int64 `json:"versionNumber"`

	// Values contains one value per column, in header order. A missing
	// value (e.g., no attached file for this row) is the empty string.
	Values []string `json:"values"`
}

// SynapseQueryResponse is the result of a table query.
type SynapseQueryResponse struct {
	// TableID is the ID of the queried table.
	TableID string `json:"tableId"`

	// Headers describes the returned columns in order.
	Headers []SynapseColumn `json:"headers"`

	// Rows contains the returned rows.
	Rows []SynapseRow `json:"rows"`
}

// SynapseRowSet appends rows to a remote table.
type SynapseRowSet struct {
	// TableID is the target table ID.
	TableID string `json:"tableId"`

	// Headers describes the columns of the appended rows.
	Headers []SynapseColumn `json:"headers"`

	// Rows contains the rows to append.
	Rows []SynapseRow `json:"rows"`
}

// SynapseFileHandle describes a file stored by the service.
type SynapseFileHandle struct {
	// ID is the file handle ID.
	ID string `json:"id"`

	// FileName is the name of the stored file.
	FileName string `json:"fileName"`

	// ContentType is the MIME type of the stored file.
	ContentType string `json:"contentType"`

	// ContentSize is the size in bytes of the stored file.
	ContentSize int64 `json:"contentSize"`
}

// SynapseFileHandleURL carries the presigned URL of a file handle.
type SynapseFileHandleURL struct {
	// URL is where the file content can be fetched from.
	URL string `json:"url"`
}
