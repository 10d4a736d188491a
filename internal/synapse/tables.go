package synapse

//
// tables.go - creating, copying, and appending to remote tables.
//

import (
	"context"
	"fmt"

	"github.com/mhealthx/extract-cli/internal/httpx"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/table"
)

// storeTableWithColumns creates a new table schema within the given
// project and appends every row of tbl to it.
func (c *Client) storeTableWithColumns(ctx context.Context, projectID,
	tableName string, columns []model.SynapseColumn, tbl *table.Table) (string, error) {
	if projectID == "" {
		return "", errInvalidArgument("projectID")
	}

	// create the table schema
	createURL, err := c.joinURL("/table")
	if err != nil {
		return "", err
	}
	schema := &model.SynapseTableSchema{
		Name:     tableName,
		ParentID: projectID,
		Columns:  columns,
	}
	created, err := httpx.PostJSON[*model.SynapseTableSchema, *model.SynapseTableSchema](
		ctx, c.config(), createURL, schema)
	if err != nil {
		return "", err
	}

	// append the rows
	appendURL, err := c.joinURL(fmt.Sprintf("/entity/%s/table/append", created.ID))
	if err != nil {
		return "", err
	}
	rowset := TableToRowSet(created.ID, created.Columns, tbl)
	if _, err := httpx.PostJSON[*model.SynapseRowSet, *model.SynapseRowSet](
		ctx, c.config(), appendURL, rowset); err != nil {
		return "", err
	}
	return created.ID, nil
}

// StoreTable writes tbl as a new table named tableName within the
// given project and returns the new table ID. All columns are stored
// as strings: this repository reshapes rows, it does not type them.
func (c *Client) StoreTable(ctx context.Context, projectID,
	tableName string, tbl *table.Table) (string, error) {
	return c.storeTableWithColumns(ctx, projectID, tableName,
		stringColumns(tbl.Header), tbl)
}

// CopyTable copies the remote table with the given ID into the given
// project, optionally removing columns (e.g., the raw audio file
// handles), and returns the copied data and the new table ID.
func (c *Client) CopyTable(ctx context.Context, tableID, projectID,
	tableName string, removeColumns []string) (*table.Table, string, error) {
	resp, err := c.QueryTable(ctx, tableID, "", 0)
	if err != nil {
		return nil, "", err
	}
	tbl := ResponseToTable(resp).RemoveColumns(removeColumns...)
	newID, err := c.StoreTable(ctx, projectID, tableName, tbl)
	if err != nil {
		return nil, "", err
	}
	return tbl, newID, nil
}

// ConcatenateTables concatenates the given local table files
// column-wise and stores the result as a new remote table. When
// transpose is true every table is transposed first; a positive
// startRow drops the leading rows of every table but the first.
func (c *Client) ConcatenateTables(ctx context.Context, paths []string,
	projectID, tableName string, transpose bool, startRow int) (*table.Table, string, error) {
	tables := []*table.Table{}
	for idx, path := range paths {
		tbl, err := table.ReadCSV(path, ',')
		if err != nil {
			return nil, "", err
		}
		if transpose {
			tbl = tbl.Transpose()
		}
		if startRow > 0 && idx > 0 {
			tbl, err = tbl.TrimRows(startRow)
			if err != nil {
				return nil, "", err
			}
		}
		tables = append(tables, tbl)
	}
	merged := table.Concat(tables...)
	newID, err := c.StoreTable(ctx, projectID, tableName, merged)
	if err != nil {
		return nil, "", err
	}
	return merged, newID, nil
}
