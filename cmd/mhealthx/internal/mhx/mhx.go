// Package mhx contains the context shared by all mhealthx subcommands.
package mhx

import (
	"database/sql"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/config"
	"github.com/mhealthx/extract-cli/cmd/mhealthx/internal/database"
	"github.com/mhealthx/extract-cli/internal/featx/audio"
	"github.com/mhealthx/extract-cli/internal/featx/gait"
	"github.com/mhealthx/extract-cli/internal/model"
	"github.com/mhealthx/extract-cli/internal/shellx"
	"github.com/mhealthx/extract-cli/internal/synapse"
	"github.com/mhealthx/extract-cli/internal/version"
	"github.com/pkg/errors"
)

// DefaultSoftwareName is the default software name.
const DefaultSoftwareName = "mhealthx-cli"

// App contains the mhealthx CLI context.
type App struct {
	config *config.Config
	db     *sql.DB
	logger model.Logger

	home       string
	configPath string
	dbPath     string
}

// GetHome returns the mhealthx home directory, honoring the
// MHEALTHX_HOME environment variable.
func GetHome() (string, error) {
	if home := os.Getenv("MHEALTHX_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locating the home directory")
	}
	return filepath.Join(home, ".mhealthx"), nil
}

// NewApp creates a new App. An empty configPath means the config file
// inside the mhealthx home, created with defaults when missing.
func NewApp(configPath string, logger model.Logger) (*App, error) {
	home, err := GetHome()
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.ReadConfig(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.MaybeMigrate(); err != nil {
			return nil, err
		}
	} else {
		configPath = filepath.Join(home, "config.json")
		cfg, err = config.ReadOrCreate(configPath)
		if err != nil {
			return nil, err
		}
	}
	dbPath := filepath.Join(home, "db", "runs.sqlite3")
	db, err := database.Connect(dbPath)
	if err != nil {
		return nil, err
	}
	return &App{
		config:     cfg,
		db:         db,
		logger:     model.ValidLoggerOrDefault(logger),
		home:       home,
		configPath: configPath,
		dbPath:     dbPath,
	}, nil
}

// Close releases the resources held by the App.
func (app *App) Close() error {
	return app.db.Close()
}

// Config returns the configuration.
func (app *App) Config() *config.Config {
	return app.config
}

// DB returns the runs ledger database.
func (app *App) DB() *sql.DB {
	return app.db
}

// Home returns the mhealthx home directory.
func (app *App) Home() string {
	return app.home
}

// ConfigPath returns the path of the config file in use.
func (app *App) ConfigPath() string {
	return app.configPath
}

// DBPath returns the path of the runs ledger database.
func (app *App) DBPath() string {
	return app.dbPath
}

// CacheDir returns the directory where we download attached files,
// creating it when missing.
func (app *App) CacheDir() (string, error) {
	dir := app.config.Output.CacheDir
	if dir == "" {
		dir = filepath.Join(app.home, "cache")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", errors.Wrap(err, "creating the cache directory")
	}
	return dir, nil
}

// TableStem returns the path stem of the feature tables we write. A
// relative stem lives inside the mhealthx home.
func (app *App) TableStem() string {
	stem := app.config.Output.TableStem
	if !filepath.IsAbs(stem) {
		stem = filepath.Join(app.home, stem)
	}
	return stem
}

// SynapseClient creates a client for the remote tabular data service.
func (app *App) SynapseClient() *synapse.Client {
	return &synapse.Client{
		BaseURL:    app.config.Service.BaseURL,
		HTTPClient: http.DefaultClient,
		Logger:     app.logger,
		Token:      app.config.Service.Token,
		UserAgent:  DefaultSoftwareName + "/" + version.Version,
	}
}

// Converter creates the audio converter described by the config.
func (app *App) Converter() *audio.Converter {
	tool := app.config.Tools.Converter
	return &audio.Converter{
		Command:    tool.Command,
		InputArgs:  tool.InputArgs,
		OutputArgs: tool.OutputArgs,
		AppendExt:  tool.AppendExt,
		Logger:     app.logger,
	}
}

// OpenSMILE creates the openSMILE runner described by the config.
func (app *App) OpenSMILE() *audio.OpenSMILE {
	tool := app.config.Tools.OpenSMILE
	return &audio.OpenSMILE{
		Command:    tool.Command,
		InputFlag:  tool.InputFlag,
		ConfigArgs: tool.ConfigArgs,
		OutputFlag: tool.OutputFlag,
		Closing:    tool.Closing,
		Format:     tool.Format,
		Logger:     app.logger,
	}
}

// GaitExtractor creates the gait extractor described by the config,
// resolving and splitting the configured command line.
func (app *App) GaitExtractor() (model.GaitExtractor, error) {
	argv, err := shellx.ParseCommandLine(app.config.Tools.Gait.CommandLine)
	if err != nil {
		return nil, errors.Wrap(err, "parsing the gait command line")
	}
	return &gait.CommandExtractor{
		Command: argv.P,
		Args:    argv.V,
		Logger:  app.logger,
	}, nil
}
