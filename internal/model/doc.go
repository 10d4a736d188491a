// Package model contains the shared interfaces and data types used
// across this repository: the logger, the HTTP client, the DTOs spoken
// by the remote tabular data service, and the gait-extractor contract.
//
// Other packages accept these interfaces and return concrete types.
package model
