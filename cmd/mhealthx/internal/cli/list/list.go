// Package list implements the list command.
package list

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/root"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/database"
)

func init() {
	cmd := root.Command("list", "List the runs recorded in the ledger.")
	failedOnly := cmd.Flag("failed", "Only list the failed runs").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		runs, err := database.ListRuns(app.DB())
		if err != nil {
			log.WithError(err).Error("failed to list the runs")
			return err
		}
		for _, run := range runs {
			if *failedOnly && run.State != database.StateFailed {
				continue
			}
			state := color.GreenString(run.State)
			detail := run.FeatureTable
			if run.State == database.StateFailed {
				state = color.RedString(run.State)
				detail = run.Failure
			}
			fmt.Printf("%s  %s  %s row %d  %s  %.2fs  %s\n",
				run.StartTime.Format("2006-01-02 15:04:05"),
				state, run.Pipeline, run.RowIndex, run.TableID,
				run.Runtime, detail)
		}
		return nil
	})
}
