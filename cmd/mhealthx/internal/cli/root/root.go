// Package root contains the root mhealthx command.
package root

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/mhx"
	"github.com/mhealthx/extract-cli/internal/version"
)

// Cmd is the root command.
var Cmd = kingpin.New("mhealthx", "Mobile health feature extraction pipelines.")

// Command is syntax sugar for defining sub-commands.
var Command = Cmd.Command

// Init should be called by all subcommands that need an mhx.App.
var Init func() (*mhx.App, error)

func init() {
	configPath := Cmd.Flag("config", "Set a custom config file path").Short('c').String()
	verbose := Cmd.Flag("verbose", "Enable verbose log output.").Short('v').Bool()

	Cmd.PreAction(func(ctx *kingpin.ParseContext) error {
		log.SetHandler(cli.Default)
		if *verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("mhealthx version %s", version.Version)
		}

		Init = func() (*mhx.App, error) {
			if *configPath != "" {
				log.Debugf("reading config file from %s", *configPath)
			} else {
				log.Debug("reading default config file")
			}
			return mhx.NewApp(*configPath, log.Log)
		}

		return nil
	})
}
