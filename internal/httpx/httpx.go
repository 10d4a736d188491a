// Package httpx contains typed helpers to call the remote tabular data
// service over HTTP. Each helper performs a single synchronous request:
// there is no retry and no caching.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mhealthx/extract-cli/internal/model"
)

// Config contains configuration shared by [GetJSON], [GetRaw],
// [PostJSON], and [DownloadFile].
//
// The zero value is invalid; initialize the MANDATORY fields.
type Config struct {
	// Authorization contains the OPTIONAL Authorization header value to use.
	Authorization string

	// Client is the MANDATORY [model.HTTPClient] to use.
	Client model.HTTPClient

	// Logger is the MANDATORY [model.Logger] to use.
	Logger model.Logger

	// UserAgent is the MANDATORY User-Agent header value to use.
	UserAgent string
}

// DefaultMaxResponseBodySize is the maximum response body size we
// are willing to read into memory.
const DefaultMaxResponseBodySize = 1 << 24

// ErrRequestFailed indicates that the server returned a non-2xx status.
type ErrRequestFailed struct {
	// StatusCode is the status code returned by the server.
	StatusCode int
}

// Error implements error.
func (err *ErrRequestFailed) Error() string {
	return fmt.Sprintf("httpx: request failed with status %d", err.StatusCode)
}

// zeroValue is a convenience function to return the zero value.
func zeroValue[T any]() T {
	var value T
	return value
}

// do performs the request and reads the whole response body.
func do(ctx context.Context, req *http.Request, config *Config) ([]byte, error) {
	// optionally assign authorization
	if value := config.Authorization; value != "" {
		req.Header.Set("Authorization", value)
	}

	// assign the user agent
	req.Header.Set("User-Agent", config.UserAgent)

	// perform the single round trip
	resp, err := config.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// make sure the request succeeded
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ErrRequestFailed{StatusCode: resp.StatusCode}
	}

	// read the whole response body
	reader := io.LimitReader(resp.Body, DefaultMaxResponseBodySize)
	return io.ReadAll(reader)
}
