package model

//
// Common HTTP definitions.
//

import "net/http"

// HTTPClient is an http client. The [*http.Client] type implements
// this interface; we use this abstraction so tests can mock it.
type HTTPClient interface {
	// Do behaves like [*http.Client.Do].
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes idle connections, if any.
	CloseIdleConnections()
}
