// Package info implements the info command.
package info

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/root"
)

func init() {
	cmd := root.Command("info", "Display information about the mhealthx installation.")

	cmd.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		log.WithFields(log.Fields{"path": app.Home()}).Info("home")
		log.WithFields(log.Fields{"path": app.ConfigPath()}).Info("config")
		log.WithFields(log.Fields{"path": app.DBPath()}).Info("database")
		log.WithFields(log.Fields{
			"base_url": app.Config().Service.BaseURL,
		}).Info("service")
		return nil
	})
}
