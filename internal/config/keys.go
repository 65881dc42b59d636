package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ErrUnknownKey is returned for a dotted key that names no setting.
const ErrUnknownKey = constError("unknown configuration key")

type constError string

func (e constError) Error() string { return string(e) }

// field binds a dotted key to a setting of Config.
type field struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

//nolint:gochecknoglobals // Static key table.
var fields = map[string]field{
	"source.url": {
		get: func(c *Config) string { return c.Source.URL },
		set: func(c *Config, v string) error { c.Source.URL = v; return nil },
	},
	"source.timeout": {
		get: func(c *Config) string { return c.Source.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			c.Source.Timeout = d
			return nil
		},
	},
	"display.history_rows": {
		get: func(c *Config) string { return strconv.Itoa(c.Display.HistoryRows) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			c.Display.HistoryRows = n
			return nil
		},
	},
	"display.locale": {
		get: func(c *Config) string { return c.Display.Locale },
		set: func(c *Config, v string) error { c.Display.Locale = v; return nil },
	},
	"display.series_name": {
		get: func(c *Config) string { return c.Display.SeriesName },
		set: func(c *Config, v string) error { c.Display.SeriesName = v; return nil },
	},
	"output.default_format": {
		get: func(c *Config) string { return c.Output.DefaultFormat },
		set: func(c *Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"server.addr": {
		get: func(c *Config) string { return c.Server.Addr },
		set: func(c *Config, v string) error { c.Server.Addr = v; return nil },
	},
	"server.compression": {
		get: func(c *Config) string { return strconv.FormatBool(c.Server.Compression) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			c.Server.Compression = b
			return nil
		},
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.format": {
		get: func(c *Config) string { return c.Logging.Format },
		set: func(c *Config, v string) error { c.Logging.Format = v; return nil },
	},
	"logging.file": {
		get: func(c *Config) string { return c.Logging.File },
		set: func(c *Config, v string) error { c.Logging.File = v; return nil },
	},
}

// Keys returns every dotted key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key such as "server.addr".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set parses value into the setting named by key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := f.set(c, value); err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return nil
}

// List returns every key with its current value.
func (c *Config) List() map[string]string {
	out := make(map[string]string, len(fields))
	for k, f := range fields {
		out[k] = f.get(c)
	}
	return out
}
