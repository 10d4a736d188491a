// Package run implements the run command.
package run

import (
	"context"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/cli/root"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/mhx"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/pipelines"
	"github.com/mhealthx/extract-cli/internal/featx/gait"
)

// newController creates the pipelines controller shared by the
// phonation and walking subcommands.
func newController(app *mhx.App, noUpload, saveRows bool) (*pipelines.Controller, error) {
	cacheDir, err := app.CacheDir()
	if err != nil {
		return nil, err
	}
	return &pipelines.Controller{
		Client:    app.SynapseClient(),
		DB:        app.DB(),
		Logger:    log.Log,
		CacheDir:  cacheDir,
		TableStem: app.TableStem(),
		SaveRows:  saveRows || app.Config().Output.SaveRows,
		Upload:    app.Config().Output.UploadResults && !noUpload,
		ProjectID: app.Config().Output.ProjectID,
	}, nil
}

func reportResult(result *pipelines.Result) {
	log.Infof("processed %d rows successfully, %d failed",
		result.Done, result.Failed)
	for _, path := range result.Tables {
		log.Infof("feature table: %s", path)
	}
	if result.UploadedTableID != "" {
		log.Infof("uploaded feature table: %s", result.UploadedTableID)
	}
}

func init() {
	cmd := root.Command("run", "Run a feature extraction pipeline.")

	phonation := cmd.Command("phonation", "Extract audio features from voice recordings.")
	phonationTable := phonation.Flag("table", "ID of the remote table to process").Required().String()
	phonationColumn := phonation.Flag("column", "Name of the audio file-handle column").
		Default("audio_audio.m4a").String()
	phonationLimit := phonation.Flag("limit", "Only process the first N rows").Int64()
	phonationNoUpload := phonation.Flag("no-upload", "Disable uploading the feature table").Bool()
	phonationSaveRows := phonation.Flag("save-rows", "Write each row to its own CSV file").Bool()

	phonation.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		ctl, err := newController(app, *phonationNoUpload, *phonationSaveRows)
		if err != nil {
			return err
		}
		pipe := &pipelines.Phonation{
			Converter: app.Converter(),
			OpenSMILE: app.OpenSMILE(),
		}
		result, err := ctl.Run(context.Background(), pipe,
			*phonationTable, *phonationColumn, *phonationLimit)
		if err != nil {
			log.WithError(err).Error("the phonation pipeline failed")
			return err
		}
		reportResult(result)
		return nil
	})

	walking := cmd.Command("walking", "Extract gait metrics from accelerometer readings.")
	walkingTable := walking.Flag("table", "ID of the remote table to process").Required().String()
	walkingColumn := walking.Flag("column", "Name of the accelerometer file-handle column").
		Default("accel_walking_outbound.json.items").String()
	walkingLimit := walking.Flag("limit", "Only process the first N rows").Int64()
	walkingNoUpload := walking.Flag("no-upload", "Disable uploading the feature table").Bool()
	walkingSaveRows := walking.Flag("save-rows", "Write each row to its own CSV file").Bool()
	walkingAxis := walking.Flag("axis", "Acceleration axis (x, y, z, magnitude)").
		Default(string(gait.AxisY)).String()
	walkingStart := walking.Flag("start", "Number of leading samples to skip").
		Default(strconv.Itoa(pipelines.DefaultStart)).Int()
	walkingDeviceMotion := walking.Flag("device-motion", "Read the device-motion JSON format").Bool()
	walkingDistance := walking.Flag("distance", "Estimated distance traversed (m)").Float64()

	walking.Action(func(_ *kingpin.ParseContext) error {
		app, err := root.Init()
		if err != nil {
			log.WithError(err).Error("failed to initialize")
			return err
		}
		defer app.Close()
		ctl, err := newController(app, *walkingNoUpload, *walkingSaveRows)
		if err != nil {
			return err
		}
		extractor, err := app.GaitExtractor()
		if err != nil {
			log.WithError(err).Error("invalid gait tool configuration")
			return err
		}
		pipe := &pipelines.Walking{
			Extractor:    extractor,
			Axis:         gait.Axis(*walkingAxis),
			Start:        *walkingStart,
			DeviceMotion: *walkingDeviceMotion,
			Distance:     *walkingDistance,
		}
		result, err := ctl.Run(context.Background(), pipe,
			*walkingTable, *walkingColumn, *walkingLimit)
		if err != nil {
			log.WithError(err).Error("the walking pipeline failed")
			return err
		}
		reportResult(result)
		return nil
	})
}
