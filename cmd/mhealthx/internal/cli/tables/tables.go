// Package tables implements the table command.
package tables

import (
	"context"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/root"
)

func init() {
	cmd := root.Command("table", "Copy, concatenate, and upload tables.")

	copyCmd := cmd.Command("copy", "Copy a remote table into a project.")
	copyTable := copyCmd.Flag("table", "ID of the remote table to copy").Required().String()
	copyProject := copyCmd.Flag("project", "ID of the destination project").Required().String()
	copyName := copyCmd.Flag("name", "Name of the new table").Required().String()
	copyRemove := copyCmd.Flag("remove-column", "Column to drop from the copy (repeatable)").Strings()

	copyCmd.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		client := app.SynapseClient()
		tbl, newID, err := client.CopyTable(context.Background(),
			*copyTable, *copyProject, *copyName, *copyRemove)
		if err != nil {
			log.WithError(err).Error("failed to copy the table")
			return err
		}
		log.Infof("copied %d rows from %s to %s", len(tbl.Rows), *copyTable, newID)
		return nil
	})

	concatCmd := cmd.Command("concat", "Concatenate local table files into a remote table.")
	concatProject := concatCmd.Flag("project", "ID of the destination project").Required().String()
	concatName := concatCmd.Flag("name", "Name of the new table").Required().String()
	concatTranspose := concatCmd.Flag("transpose", "Transpose every table first").Bool()
	concatStartRow := concatCmd.Flag("start-row", "Drop the leading rows of every table but the first").Int()
	concatPaths := concatCmd.Arg("files", "Local CSV table files").Required().Strings()

	concatCmd.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		client := app.SynapseClient()
		merged, newID, err := client.ConcatenateTables(context.Background(),
			*concatPaths, *concatProject, *concatName, *concatTranspose, *concatStartRow)
		if err != nil {
			log.WithError(err).Error("failed to concatenate the tables")
			return err
		}
		log.Infof("stored %d rows as %s", len(merged.Rows), newID)
		return nil
	})

	uploadCmd := cmd.Command("upload-files", "Upload local files and reference them from a new table.")
	uploadProject := uploadCmd.Flag("project", "ID of the destination project").Required().String()
	uploadName := uploadCmd.Flag("name", "Name of the new table").Required().String()
	uploadColumn := uploadCmd.Flag("column", "Name of the file-handle column").
		Default("FILES").String()
	uploadPaths := uploadCmd.Arg("files", "Local files to upload").Required().Strings()

	uploadCmd.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		client := app.SynapseClient()
		newID, err := client.FilesToTable(context.Background(),
			*uploadPaths, *uploadProject, *uploadName, *uploadColumn)
		if err != nil {
			log.WithError(err).Error("failed to upload the files")
			return err
		}
		log.Infof("uploaded %d files, handle table is %s", len(*uploadPaths), newID)
		return nil
	})
}
