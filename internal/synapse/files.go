package synapse

//
// files.go - downloading and uploading the files attached to rows.
//

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/mhealthx/extract-cli/internal/fsx"
	"github.com/mhealthx/extract-cli/internal/httpx"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/table"
)

// DownloadFileHandle downloads the file with the given handle ID into
// destDir and returns the local path. The file name is the handle ID
// followed by the column name, which carries the original extension
// (e.g., "12345_audio_audio.m4a").
//
// An empty handleID means the row has no attached file: we return an
// empty path and no error, and the caller records a null result.
func (c *Client) DownloadFileHandle(ctx context.Context, handleID,
	columnName, destDir string) (string, error) {
	if handleID == "" {
		return "", nil
	}

	// resolve the handle to a presigned URL
	URL, err := c.joinURL(fmt.Sprintf("/fileHandle/%s/url", handleID))
	if err != nil {
		return "", err
	}
	resolved, err := httpx.GetJSON[*model.SynapseFileHandleURL](ctx, c.config(), URL)
	if err != nil {
		return "", err
	}

	// stream the content to disk
	destPath := filepath.Join(destDir, fmt.Sprintf("%s_%s", handleID, columnName))
	if err := httpx.DownloadFile(ctx, c.config(), resolved.URL, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// DownloadTableFiles queries a table and downloads the files referenced
// by the given file-handle columns. It returns the table plus, for each
// requested column, one local path per downloaded row ("" where the row
// has no file). A limit of zero downloads the files of every row.
func (c *Client) DownloadTableFiles(ctx context.Context, tableID string,
	columnNames []string, limit int64, destDir string) (*table.Table, [][]string, error) {
	resp, err := c.QueryTable(ctx, tableID, "", limit)
	if err != nil {
		return nil, nil, err
	}
	tbl := ResponseToTable(resp)

	downloaded := [][]string{}
	for _, columnName := range columnNames {
		colIdx, err := tbl.ColumnIndex(columnName)
		if err != nil {
			return nil, nil, err
		}
		paths := []string{}
		for _, values := range tbl.Rows {
			path, err := c.DownloadFileHandle(ctx, values[colIdx], columnName, destDir)
			if err != nil {
				return nil, nil, err
			}
			paths = append(paths, path)
		}
		downloaded = append(downloaded, paths)
	}
	return tbl, downloaded, nil
}

// UploadFile uploads the file at the given path and returns the
// file handle assigned by the service.
func (c *Client) UploadFile(ctx context.Context, path string) (*model.SynapseFileHandle, error) {
	filep, err := fsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer filep.Close()

	URL, err := c.joinURL("/fileHandle")
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("fileName", filepath.Base(path))
	URL += "?" + query.Encode()

	return httpx.PostRaw[*model.SynapseFileHandle](
		ctx, c.config(), URL, "application/octet-stream", filep)
}

// FilesToTable uploads the given files and stores their file handle
// IDs as a one-column table within the given project. It returns the
// ID of the created table.
func (c *Client) FilesToTable(ctx context.Context, paths []string,
	projectID, tableName, columnName string) (string, error) {
	rows := [][]string{}
	for _, path := range paths {
		handle, err := c.UploadFile(ctx, path)
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{handle.ID})
	}
	columns := []model.SynapseColumn{{
		Name:       columnName,
		ColumnType: model.SynapseColumnTypeFileHandleID,
	}}
	tbl := &table.Table{Header: []string{columnName}, Rows: rows}
	return c.storeTableWithColumns(ctx, projectID, tableName, columns, tbl)
}
