package main

import (
	"os"

	"github.com/apex/log"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/app"
	_ "github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/info"
	_ "github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/list"
	_ "github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/run"
	_ "github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/tables"
	_ "github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/version"
)

func main() {
	if err := app.Run(); err != nil {
		log.WithError(err).Error("mhealthx failed")
		os.Exit(1)
	}
}
