// Package config holds the settings of the CLI.
//
// Settings come from a JSON file, "dosk.json", in the first of the
// standard configuration folders which has one.  Environment variables
// are laid over the file, and command-line flags over both.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

// FileName is the name of the configuration file.
const FileName = "dosk.json"

// Config holds our settings.
type Config struct {
	// Debug enables debug logging.
	Debug bool `json:"debug"`

	// Input names the console input driver.
	Input string `json:"input"`

	// Output names the console output driver.
	Output string `json:"output"`

	// Trace is the file dispatches are recorded to, if set.
	Trace string `json:"trace"`

	// Location is the time zone file times use, "Local" if unset.
	Location string `json:"location"`
}

// Default returns the settings used when nothing else is given.
func Default() Config {
	return Config{
		Input:    "stty",
		Output:   "ansi",
		Location: "Local",
	}
}

// Load reads the configuration file, if there is one, and overlays the
// environment.
func Load() (Config, error) {
	cfg := Default()

	dirs := configdir.New("skx", "dosk")
	if folder := dirs.QueryFolderContainsFile(FileName); folder != nil {
		data, err := folder.ReadFile(FileName)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to read %s", FileName)
		}
		if err = cfg.Parse(data); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse %s/%s", folder.Path, FileName)
		}
	}

	cfg.Overlay(os.Getenv)
	return cfg, nil
}

// LoadFile reads the named file, and overlays the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read configuration")
	}
	if err = cfg.Parse(data); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}

	cfg.Overlay(os.Getenv)
	return cfg, nil
}

// Parse updates the settings from JSON.  Keys which are missing keep
// their current values.
func (c *Config) Parse(data []byte) error {
	return json.Unmarshal(data, c)
}

// Overlay updates the settings from the environment:
//
//	$DEBUG        enables debug logging when non-empty
//	$DOSK_INPUT   names the console input driver
//	$DOSK_OUTPUT  names the console output driver
//	$DOSK_TRACE   names the trace file
func (c *Config) Overlay(getenv func(string) string) {
	if getenv("DEBUG") != "" {
		c.Debug = true
	}
	if v := getenv("DOSK_INPUT"); v != "" {
		c.Input = v
	}
	if v := getenv("DOSK_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := getenv("DOSK_TRACE"); v != "" {
		c.Trace = v
	}
}

// TimeZone returns the location named by the settings.
func (c *Config) TimeZone() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown location %q", c.Location)
	}
	return loc, nil
}
