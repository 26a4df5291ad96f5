// Package config assembles run settings from defaults, a
// corespec.yaml file and CORESPEC_ environment overrides.
// Command-line flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.corespec/pkg/env"
	"digital.vasic.corespec/pkg/logging"
	"digital.vasic.corespec/pkg/scenario"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CORESPEC_"

// DefaultFile is the configuration file looked up in the
// working directory.
const DefaultFile = "corespec.yaml"

// Formats lists the accepted report formats.
var Formats = []string{"text", "json", "markdown", "html"}

// Config holds the settings of a run.
type Config struct {
	// Paths are declaration files or directories to load.
	Paths []string `yaml:"paths"`

	// Builtin declares every built-in suite.
	Builtin bool `yaml:"builtin"`

	// Suites names built-in suites to declare.
	Suites []string `yaml:"suites"`

	// Format selects the report renderer.
	Format string `yaml:"format"`

	// Concurrency is the number of cases run at once.
	Concurrency int `yaml:"concurrency"`

	// Timeout bounds each case. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Filter keeps only cases whose full name matches.
	Filter string `yaml:"filter"`

	// Capture swaps stdout while an action runs.
	Capture bool `yaml:"capture"`

	// History is the SQLite run history database.
	History string `yaml:"history"`

	// HistoryJSONL is a JSON-lines history file.
	HistoryJSONL string `yaml:"history_jsonl"`

	// Monitor is the listen address of the live monitor.
	Monitor string `yaml:"monitor"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// LogsDir receives run.log and cases.log when set.
	LogsDir string `yaml:"logs_dir"`

	// Verbose enables detailed console output.
	Verbose bool `yaml:"verbose"`
}

// New creates a Config with sensible defaults.
func New() *Config {
	return &Config{
		Format:      "text",
		Concurrency: 1,
		LogLevel:    "info",
	}
}

// Load reads path over the defaults. A missing file is not an
// error when optional is set.
func Load(path string, optional bool) (*Config, error) {
	cfg := New()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.decode(data, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode reads YAML over c. Unknown keys are rejected;
// durations use time.ParseDuration syntax ("30s").
func (c *Config) decode(data []byte, source string) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return scenario.NewConfigurationError(source, err.Error())
	}
	return nil
}

// ApplyEnv overrides fields from l. Recognised keys, after the
// prefix: PATHS, BUILTIN, SUITES, FORMAT, CONCURRENCY, TIMEOUT,
// FILTER, CAPTURE, HISTORY, HISTORY_JSONL, MONITOR, LOG_LEVEL,
// LOGS_DIR and VERBOSE. Lists are comma separated.
func (c *Config) ApplyEnv(l *env.DefaultLoader) error {
	strs := map[string]*string{
		"FORMAT":        &c.Format,
		"FILTER":        &c.Filter,
		"HISTORY":       &c.History,
		"HISTORY_JSONL": &c.HistoryJSONL,
		"MONITOR":       &c.Monitor,
		"LOG_LEVEL":     &c.LogLevel,
		"LOGS_DIR":      &c.LogsDir,
	}
	for key, dst := range strs {
		if v, ok := l.Lookup(key); ok && v != "" {
			*dst = v
		}
	}

	lists := map[string]*[]string{
		"PATHS":  &c.Paths,
		"SUITES": &c.Suites,
	}
	for key, dst := range lists {
		if v, ok := l.Lookup(key); ok && v != "" {
			*dst = splitList(v)
		}
	}

	bools := map[string]*bool{
		"BUILTIN": &c.Builtin,
		"CAPTURE": &c.Capture,
		"VERBOSE": &c.Verbose,
	}
	for key, dst := range bools {
		b, ok, err := l.GetBool(key)
		if err != nil {
			return scenario.NewConfigurationError("environment", err.Error())
		}
		if ok {
			*dst = b
		}
	}

	n, ok, err := l.GetInt("CONCURRENCY")
	if err != nil {
		return scenario.NewConfigurationError("environment", err.Error())
	}
	if ok {
		c.Concurrency = n
	}

	d, ok, err := l.GetDuration("TIMEOUT")
	if err != nil {
		return scenario.NewConfigurationError("environment", err.Error())
	}
	if ok {
		c.Timeout = d
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the assembled settings.
func (c *Config) Validate() error {
	var errs []error
	if !isFormat(c.Format) {
		errs = append(errs, fmt.Errorf(
			"format %q is not one of %s",
			c.Format, strings.Join(Formats, ", "),
		))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf(
			"concurrency must be at least 1, got %d", c.Concurrency,
		))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative"))
	}
	if c.Capture && c.Concurrency > 1 {
		errs = append(errs, fmt.Errorf(
			"output capture requires concurrency 1",
		))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &scenario.ConfigurationError{
			Subject: "config",
			Reason:  "invalid settings",
			Err:     errors.Join(errs...),
		}
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Level returns the parsed log level.
func (c *Config) Level() logging.LogLevel {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// Resolve loads the config file (DefaultFile when path is
// empty, in which case the file is optional), then .env
// (optional) and the process environment.
func Resolve(path, dotenv string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultFile
	}
	cfg, err := Load(path, optional)
	if err != nil {
		return nil, err
	}

	l := env.NewLoader(EnvPrefix)
	if dotenv != "" {
		if err := l.Load(dotenv); err != nil &&
			!errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(l); err != nil {
		return nil, err
	}
	return cfg, nil
}
