// Package synapse contains the client for the remote tabular data
// service holding the study tables and their attached files.
//
// Every operation is a single synchronous request sequence: there is
// no retry logic and no attempt at idempotent or atomic table updates.
package synapse

import (
	"fmt"
	"net/url"

	"github.com/mhealthx/extract-cli/internal/httpx"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/table"
)

// Client is a client for the remote tabular data service.
//
// The zero value is invalid; initialize the MANDATORY fields.
type Client struct {
	// BaseURL is the MANDATORY base URL of the service.
	BaseURL string

	// HTTPClient is the MANDATORY underlying http client to use.
	HTTPClient model.HTTPClient

	// Logger is the MANDATORY logger to use.
	Logger model.Logger

	// Token is the OPTIONAL bearer token for authenticating.
	Token string

	// UserAgent is the MANDATORY user agent to use.
	UserAgent string
}

// config creates the [*httpx.Config] shared by all operations.
func (c *Client) config() *httpx.Config {
	authorization := ""
	if c.Token != "" {
		authorization = "Bearer " + c.Token
	}
	return &httpx.Config{
		Authorization: authorization,
		Client:        c.HTTPClient,
		Logger:        c.Logger,
		UserAgent:     c.UserAgent,
	}
}

// joinURL joins the base URL with the given path.
func (c *Client) joinURL(path string) (string, error) {
	URL, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}
	URL.Path = path
	return URL.String(), nil
}

// ResponseToTable converts a query response to a [*table.Table].
func ResponseToTable(resp *model.SynapseQueryResponse) *table.Table {
	out := &table.Table{}
	for _, col := range resp.Headers {
		out.Header = append(out.Header, col.Name)
	}
	for _, row := range resp.Rows {
		out.Rows = append(out.Rows, row.Values)
	}
	return out
}

// TableToRowSet converts a [*table.Table] to a row set for appending
// to the remote table with the given ID.
func TableToRowSet(tableID string, columns []model.SynapseColumn, tbl *table.Table) *model.SynapseRowSet {
	out := &model.SynapseRowSet{
		TableID: tableID,
		Headers: columns,
	}
	for idx, values := range tbl.Rows {
		out.Rows = append(out.Rows, model.SynapseRow{
			RowID:  int64(idx),
			Values: values,
		})
	}
	return out
}

// stringColumns builds STRING column descriptors from a table header.
func stringColumns(header []string) []model.SynapseColumn {
	columns := []model.SynapseColumn{}
	for _, name := range header {
		columns = append(columns, model.SynapseColumn{
			Name:       name,
			ColumnType: model.SynapseColumnTypeString,
		})
	}
	return columns
}

// errInvalidArgument is a convenience for validating arguments.
func errInvalidArgument(name string) error {
	return fmt.Errorf("synapse: invalid argument: %s", name)
}
