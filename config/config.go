// Package config reads the settings of unitflow programs from the
// environment and from dotenv files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sarchlab/unitflow/id"
)

// Environment variables.
const (
	EnvRecordDB    = "UNITFLOW_RECORD_DB"
	EnvMonitorPort = "UNITFLOW_MONITOR_PORT"
	EnvIDMode      = "UNITFLOW_ID_MODE"
	EnvLog         = "UNITFLOW_LOG"
)

// Config holds the settings of a run.
type Config struct {
	// RecordDB is the SQLite file signals are recorded into. Signals are not
	// recorded if it is empty.
	RecordDB string

	// MonitorPort is the port of the monitoring server. The server is not
	// started if it is 0.
	MonitorPort int

	// IDMode selects how block IDs are generated.
	IDMode id.Mode

	// Log enables logging every block run.
	Log bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{IDMode: id.Sequential}
}

// Load reads settings from the dotenv files and then from the environment.
// Variables already set in the environment take precedence over the files.
// Missing files are skipped.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds the settings from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	if v, ok := lookup(EnvRecordDB); ok {
		c.RecordDB = v
	}

	if v, ok := lookup(EnvMonitorPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid %s %q", EnvMonitorPort, v)
		}

		c.MonitorPort = port
	}

	if v, ok := lookup(EnvIDMode); ok && v != "" {
		mode := id.Mode(v)
		if mode != id.Sequential && mode != id.Parallel {
			return Config{}, fmt.Errorf("invalid %s %q", EnvIDMode, v)
		}

		c.IDMode = mode
	}

	if v, ok := lookup(EnvLog); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q", EnvLog, v)
		}

		c.Log = enabled
	}

	return c, nil
}
