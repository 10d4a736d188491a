package httpx

//
// download.go - GET a response body and stream it to a file on disk.
//
// We use this for the audio and accelerometer files attached to table
// rows, which are too large to be worth buffering in memory.
//

import (
	"context"
	"io"
	"net/http"
	"os"
)

// DownloadFile sends a GET request and streams the response body
// to the file named by destPath, which is created or truncated.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - config contains the config;
//
// - URL is the URL to use;
//
// - destPath is the destination file path.
//
// On failure the destination file may exist and be partially written;
// the caller treats the row as failed and moves on.
func DownloadFile(ctx context.Context, config *Config, URL, destPath string) error {
	// construct the request to use
	req, err := http.NewRequestWithContext(ctx, "GET", URL, nil)
	if err != nil {
		return err
	}

	// optionally assign authorization
	if value := config.Authorization; value != "" {
		req.Header.Set("Authorization", value)
	}

	// assign the user agent
	req.Header.Set("User-Agent", config.UserAgent)

	// perform the single round trip
	resp, err := config.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// make sure the request succeeded
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ErrRequestFailed{StatusCode: resp.StatusCode}
	}

	// stream the body to disk
	filep, err := os.Create(destPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(filep, resp.Body); err != nil {
		filep.Close()
		return err
	}
	return filep.Close()
}
