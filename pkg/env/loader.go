// Package env reads settings from .env files and the process
// environment under a common prefix.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Loader defines the interface for environment variable management.
type Loader interface {
	// Load reads environment variables from a .env file.
	Load(filepath string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// Lookup retrieves a value and reports whether it was set.
	Lookup(key string) (string, bool)
	// GetRequired retrieves a required environment variable or returns error.
	GetRequired(key string) (string, error)
	// GetWithDefault retrieves an environment variable with a default fallback.
	GetWithDefault(key, defaultValue string) string
	// Set sets an environment variable.
	Set(key, value string) error
	// All returns all loaded environment variables.
	All() map[string]string
}

// DefaultLoader implements Loader with .env file support. Keys
// are looked up with the prefix prepended; the process
// environment takes precedence over loaded files.
type DefaultLoader struct {
	mu     sync.RWMutex
	prefix string
	vars   map[string]string
	loaded bool
}

// NewLoader creates a DefaultLoader whose keys are prefixed
// with prefix (for example "CORESPEC_").
func NewLoader(prefix string) *DefaultLoader {
	return &DefaultLoader{
		prefix: prefix,
		vars:   make(map[string]string),
	}
}

// Prefix returns the key prefix.
func (l *DefaultLoader) Prefix() string { return l.prefix }

func (l *DefaultLoader) Load(filepath string) error {
	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", filepath, err)
	}
	defer file.Close()

	l.mu.Lock()
	defer l.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Remove surrounding quotes
		value = strings.Trim(value, `"'`)
		l.vars[key] = value
	}

	l.loaded = true
	return scanner.Err()
}

// Loaded reports whether a file has been read.
func (l *DefaultLoader) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

func (l *DefaultLoader) Lookup(key string) (string, bool) {
	name := l.prefix + key
	// OS env takes precedence
	if v, ok := os.LookupEnv(name); ok {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.vars[name]
	return v, ok
}

func (l *DefaultLoader) Get(key string) string {
	v, _ := l.Lookup(key)
	return v
}

func (l *DefaultLoader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf(
			"required environment variable %s%s is not set", l.prefix, key,
		)
	}
	return v, nil
}

func (l *DefaultLoader) GetWithDefault(key, defaultValue string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

// GetInt parses key as an integer. ok is false when key is
// unset.
func (l *DefaultLoader) GetInt(key string) (n int, ok bool, err error) {
	v, ok := l.Lookup(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(v)
	if err != nil {
		return 0, true, fmt.Errorf("%s%s: %w", l.prefix, key, err)
	}
	return n, true, nil
}

// GetBool parses key as a boolean.
func (l *DefaultLoader) GetBool(key string) (b bool, ok bool, err error) {
	v, ok := l.Lookup(key)
	if !ok || v == "" {
		return false, false, nil
	}
	b, err = strconv.ParseBool(v)
	if err != nil {
		return false, true, fmt.Errorf("%s%s: %w", l.prefix, key, err)
	}
	return b, true, nil
}

// GetDuration parses key as a time.Duration.
func (l *DefaultLoader) GetDuration(key string) (d time.Duration, ok bool, err error) {
	v, ok := l.Lookup(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	d, err = time.ParseDuration(v)
	if err != nil {
		return 0, true, fmt.Errorf("%s%s: %w", l.prefix, key, err)
	}
	return d, true, nil
}

func (l *DefaultLoader) Set(key, value string) error {
	name := l.prefix + key
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[name] = value
	return os.Setenv(name, value)
}

// All returns the loaded variables carrying the prefix, keyed
// without it.
func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		if key, ok := strings.CutPrefix(k, l.prefix); ok {
			result[key] = v
		}
	}
	return result
}
