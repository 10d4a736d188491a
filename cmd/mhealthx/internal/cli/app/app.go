// Package app contains the main app entry point.
package app

import (
	"os"

	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/root"
	"github.com/mhealthx/extract-cli/internal/version"
)

// Run the app. This is the main app entry point.
func Run() error {
	root.Cmd.Version(version.Version)
	_, err := root.Cmd.Parse(os.Args[1:])
	return err
}
