// Package config handles the config file of the mhealthx command.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// ConfigVersion is the latest version of the config file.
const ConfigVersion = 1

// Service contains the settings of the remote tabular data service.
type Service struct {
	BaseURL string `json:"base_url"`
	Token   string `json:"token"`
}

// ConverterTool contains the settings of the audio converter.
type ConverterTool struct {
	Command    string   `json:"command"`
	InputArgs  []string `json:"input_args"`
	OutputArgs []string `json:"output_args"`
	AppendExt  string   `json:"append_ext"`
}

// OpenSMILETool contains the settings of the openSMILE extractor.
type OpenSMILETool struct {
	Command    string   `json:"command"`
	InputFlag  string   `json:"input_flag"`
	ConfigArgs []string `json:"config_args"`
	OutputFlag string   `json:"output_flag"`
	Closing    []string `json:"closing"`
	Format     string   `json:"format"`
}

// GaitTool contains the settings of the gait routine.
type GaitTool struct {
	// CommandLine is the full command line invoking the routine,
	// shell-quoted (e.g., "pygait --json").
	CommandLine string `json:"command_line"`
}

// Tools contains the settings of the external commands we invoke.
type Tools struct {
	Converter ConverterTool `json:"converter"`
	OpenSMILE OpenSMILETool `json:"opensmile"`
	Gait      GaitTool      `json:"gait"`
}

// Output contains the settings controlling where results go.
type Output struct {
	// CacheDir is where we download attached files; empty means a
	// directory under the mhealthx home.
	CacheDir string `json:"cache_dir"`

	// TableStem is the path stem of the feature tables we write.
	TableStem string `json:"table_stem"`

	// SaveRows makes every row go to its own CSV file rather than
	// being appended to the shared feature table.
	SaveRows bool `json:"save_rows"`

	// UploadResults makes us push the feature table back to the
	// service at the end of a pipeline.
	UploadResults bool `json:"upload_results"`

	// ProjectID is the service project receiving uploaded tables.
	ProjectID string `json:"project_id"`
}

// Config is the configuration of the mhealthx command.
type Config struct {
	mutex sync.Mutex

	// ConfigVersion is incremented every time we change the format.
	ConfigVersion int `json:"config_version"`

	Service Service `json:"service"`
	Tools   Tools   `json:"tools"`
	Output  Output  `json:"output"`

	path string
}

// ReadConfig reads the configuration from the given path.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}
	config.path = path
	return config, nil
}

// Default returns a new configuration with the default settings.
func Default() *Config {
	return &Config{
		ConfigVersion: ConfigVersion,
		Tools: Tools{
			Converter: ConverterTool{
				Command:    "ffmpeg",
				InputArgs:  []string{"-y", "-i"},
				OutputArgs: []string{"-ac", "2"},
				AppendExt:  ".wav",
			},
			OpenSMILE: OpenSMILETool{
				Command:    "SMILExtract",
				InputFlag:  "-I",
				ConfigArgs: []string{"-C", "IS13_ComParE.conf"},
				OutputFlag: "-csvoutput",
				Closing:    []string{"-nologfile", "1"},
				Format:     "csv",
			},
			Gait: GaitTool{
				CommandLine: "pygait",
			},
		},
		Output: Output{
			TableStem:     "features",
			UploadResults: true,
		},
	}
}

// Write writes the configuration to disk at the path it was read from
// or previously written to.
func (c *Config) Write() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.path == "" {
		return errors.New("config file path is not set")
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing config file")
	}
	return os.WriteFile(c.path, data, 0644)
}

// WriteTo writes the configuration to the given path and remembers it
// for future [Config.Write] calls.
func (c *Config) WriteTo(path string) error {
	c.mutex.Lock()
	c.path = path
	c.mutex.Unlock()
	return c.Write()
}

// MaybeMigrate upgrades the config file to the latest version.
func (c *Config) MaybeMigrate() error {
	if c.ConfigVersion == ConfigVersion {
		return nil
	}
	if c.ConfigVersion > ConfigVersion {
		return errors.New("config file version is newer than this binary")
	}
	log.Debugf("migrating config from version %d to %d", c.ConfigVersion, ConfigVersion)
	c.ConfigVersion = ConfigVersion
	return c.Write()
}

// ReadOrCreate reads the configuration at the given path, writing the
// default configuration there first when the file does not exist.
func ReadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Debugf("writing default config at %s", path)
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
		config := Default()
		if err := config.WriteTo(path); err != nil {
			return nil, err
		}
		return config, nil
	}
	config, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := config.MaybeMigrate(); err != nil {
		return nil, err
	}
	return config, nil
}
