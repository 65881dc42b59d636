package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Variables already set keep their value and missing files are
// skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnvOverrides applies PKINDEX_* variables onto c. An unparsable
// PKINDEX_HISTORY_ROWS is ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvSource); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvHistoryRows); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Display.HistoryRows = n
		}
	}
}
