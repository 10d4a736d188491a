// Package version contains version information.
package version

// Version is the version of this repository.
const Version = "0.4.0"
