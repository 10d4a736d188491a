package synapse

//
// query.go - POST /entity/{id}/table/query
//

import (
	"context"
	"fmt"

	"github.com/mhealthx/extract-cli/internal/httpx"
	"github.com/mhealthx/extract-cli/internal/model"
)

// QueryTable queries the remote table with the given ID. An empty
// sql argument selects every row of the table. A positive limit
// bounds the number of returned rows.
func (c *Client) QueryTable(ctx context.Context, tableID, sql string,
	limit int64) (*model.SynapseQueryResponse, error) {
	if tableID == "" {
		return nil, errInvalidArgument("tableID")
	}
	if sql == "" {
		sql = fmt.Sprintf("select * from %s", tableID)
	}

	// construct the URL to use
	URL, err := c.joinURL(fmt.Sprintf("/entity/%s/table/query", tableID))
	if err != nil {
		return nil, err
	}

	// issue the query and read the response
	req := &model.SynapseQueryRequest{
		SQL:   sql,
		Limit: limit,
	}
	return httpx.PostJSON[*model.SynapseQueryRequest, *model.SynapseQueryResponse](
		ctx, c.config(), URL, req)
}
