package httpx

//
// postraw.go - POST a raw body (e.g., a file upload) and read a JSON response.
//

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// PostRaw sends a POST request with a raw body and reads a JSON response.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - config is the config to use;
//
// - URL is the URL to use;
//
// - contentType is the Content-Type header value to use;
//
// - body is the raw request body.
//
// This function either returns an error or a valid Output.
func PostRaw[Output any](ctx context.Context, config *Config, URL string,
	contentType string, body io.Reader) (Output, error) {
	// construct the request to use
	req, err := http.NewRequestWithContext(ctx, "POST", URL, body)
	if err != nil {
		return zeroValue[Output](), err
	}

	// assign the content type
	req.Header.Set("Content-Type", contentType)

	// get the raw response body
	rawrespbody, err := do(ctx, req, config)

	// handle the case of error
	if err != nil {
		return zeroValue[Output](), err
	}

	// parse the response body as JSON
	var output Output
	if err := json.Unmarshal(rawrespbody, &output); err != nil {
		return zeroValue[Output](), err
	}

	return output, nil
}
