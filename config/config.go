// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads urlkit settings from a YAML file, URLKIT_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/urlkit/fileutil"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/scan"
	"github.com/jongio/urlkit/security"
	"github.com/jongio/urlkit/urlparse"
	"github.com/jongio/urlkit/urlutil"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Output formats.
const (
	OutputDefault = "default"
	OutputJSON    = "json"
)

// Environment variable names.
const (
	EnvMode             = "URLKIT_MODE"
	EnvMaxLength        = "URLKIT_MAX_LENGTH"
	EnvOutput           = "URLKIT_OUTPUT"
	EnvLogLevel         = "URLKIT_LOG_LEVEL"
	EnvLogFormat        = "URLKIT_LOG_FORMAT"
	EnvWorkers          = "URLKIT_SCAN_WORKERS"
	EnvRateLimit        = "URLKIT_SCAN_RATE_LIMIT"
	EnvFailureThreshold = "URLKIT_SCAN_FAILURE_THRESHOLD"
	EnvCacheDir         = "URLKIT_CACHE_DIR"
	EnvCacheTTL         = "URLKIT_CACHE_TTL"
	EnvMetricsAddr      = "URLKIT_METRICS_ADDR"
	EnvMCPRateLimit     = "URLKIT_MCP_RATE_LIMIT"
)

// Config holds every urlkit setting.
type Config struct {
	Mode      string `yaml:"mode"`
	MaxLength int    `yaml:"maxLength"`
	Output    string `yaml:"output"`
	Log       Log    `yaml:"log"`
	Scan      Scan   `yaml:"scan"`
	MCP       MCP    `yaml:"mcp"`
}

// Log configures logutil.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Scan configures the scan command.
type Scan struct {
	Workers          int           `yaml:"workers"`
	RateLimit        float64       `yaml:"rateLimit"`
	Burst            int           `yaml:"burst"`
	FailureThreshold int           `yaml:"failureThreshold"`
	CacheDir         string        `yaml:"cacheDir"`
	CacheTTL         time.Duration `yaml:"cacheTTL"`
	MetricsAddr      string        `yaml:"metricsAddr"`
}

// MCP configures the MCP server's tool rate limiter.
type MCP struct {
	RateLimit float64 `yaml:"rateLimit"`
	Burst     int     `yaml:"burst"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mode:      urlparse.Strict.String(),
		MaxLength: urlutil.MaxURLLength,
		Output:    OutputDefault,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Scan: Scan{
			Workers:          scan.DefaultWorkers,
			FailureThreshold: 0,
			CacheTTL:         24 * time.Hour,
		},
		MCP: MCP{
			RateLimit: 10,
			Burst:     20,
		},
	}
}

// Load returns Default overlaid with the YAML file at path and then with
// URLKIT_* environment variables. An empty path skips the file. The result
// is not validated; flags usually still need to be applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if err := security.ValidatePath(path); err != nil {
		return fmt.Errorf("config path: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path validated above
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := security.ValidateFilePermissions(path); errors.Is(err, security.ErrInsecureFilePermissions) {
		logutil.Warn("config file is writable by other users", "path", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables read through lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, name, v)
		}
		*dst = n
		return nil
	}
	float := func(name string, dst *float64) error {
		v, ok := lookup(name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, name, v)
		}
		*dst = f
		return nil
	}

	str(EnvMode, &c.Mode)
	str(EnvOutput, &c.Output)
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)
	str(EnvCacheDir, &c.Scan.CacheDir)
	str(EnvMetricsAddr, &c.Scan.MetricsAddr)

	if v, ok := lookup(EnvCacheTTL); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, EnvCacheTTL, v)
		}
		c.Scan.CacheTTL = d
	}

	return errors.Join(
		integer(EnvMaxLength, &c.MaxLength),
		integer(EnvWorkers, &c.Scan.Workers),
		integer(EnvFailureThreshold, &c.Scan.FailureThreshold),
		float(EnvRateLimit, &c.Scan.RateLimit),
		float(EnvMCPRateLimit, &c.MCP.RateLimit),
	)
}

// Validate checks every field and returns all problems joined, each
// wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if _, ok := urlparse.ParseMode(c.Mode); !ok {
		bad("mode must be strict or lenient, got %q", c.Mode)
	}
	if c.MaxLength < 0 {
		bad("maxLength must not be negative, got %d", c.MaxLength)
	}
	if c.Output != OutputDefault && c.Output != OutputJSON {
		bad("output must be %s or %s, got %q", OutputDefault, OutputJSON, c.Output)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		bad("log level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		bad("log format must be text or json, got %q", c.Log.Format)
	}
	if c.Scan.Workers < 0 {
		bad("scan workers must not be negative, got %d", c.Scan.Workers)
	}
	if c.Scan.RateLimit < 0 {
		bad("scan rate limit must not be negative, got %v", c.Scan.RateLimit)
	}
	if c.Scan.Burst < 0 {
		bad("scan burst must not be negative, got %d", c.Scan.Burst)
	}
	if c.Scan.FailureThreshold < 0 {
		bad("scan failure threshold must not be negative, got %d", c.Scan.FailureThreshold)
	}
	if c.Scan.CacheTTL < 0 {
		bad("scan cache TTL must not be negative, got %v", c.Scan.CacheTTL)
	}
	if c.Scan.CacheDir != "" {
		if err := security.ValidatePath(c.Scan.CacheDir); err != nil {
			bad("scan cache dir: %v", err)
		}
	}
	if c.Scan.MetricsAddr != "" {
		if err := security.ValidateListenAddr(c.Scan.MetricsAddr); err != nil {
			bad("scan metrics addr: %v", err)
		}
	}
	if c.MCP.RateLimit < 0 {
		bad("mcp rate limit must not be negative, got %v", c.MCP.RateLimit)
	}
	if c.MCP.Burst < 0 {
		bad("mcp burst must not be negative, got %d", c.MCP.Burst)
	}

	return errors.Join(errs...)
}

// ParseOptions returns the urlparse options described by the config.
func (c *Config) ParseOptions() urlparse.Options {
	mode, _ := urlparse.ParseMode(c.Mode)
	return urlparse.Options{Mode: mode, MaxLength: c.MaxLength}
}

// ScanOptions returns the scanner options described by the config.
func (c *Config) ScanOptions() scan.Options {
	return scan.Options{
		Workers:          c.Scan.Workers,
		RateLimit:        c.Scan.RateLimit,
		Burst:            c.Scan.Burst,
		FailureThreshold: c.Scan.FailureThreshold,
		Parse:            c.ParseOptions(),
	}
}

// Fingerprint identifies the settings that change scan results, for use in
// cache keys.
func (c *Config) Fingerprint() string {
	mode, _ := urlparse.ParseMode(c.Mode)
	return fmt.Sprintf("mode=%s;max=%d", mode, c.MaxLength)
}

// WriteDefault writes the default configuration as YAML to path, refusing
// to overwrite an existing file.
func WriteDefault(path string) error {
	if err := security.ValidatePath(path); err != nil {
		return fmt.Errorf("config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	content := sampleHeader + string(data)
	return fileutil.AtomicWriteFile(path, []byte(content), fileutil.FilePermission)
}

const sampleHeader = `# urlkit configuration
#
# Precedence: flags > URLKIT_* environment variables > this file > defaults.
#
#   mode:                  strict or lenient parsing
#   maxLength:             reject inputs longer than this (0 = unlimited)
#   output:                default or json
#   log.level:             debug, info, warn, error
#   log.format:            text or json
#   scan.workers:          concurrent parses
#   scan.rateLimit:        parses per second (0 = unlimited)
#   scan.burst:            token bucket size (0 = twice the rate)
#   scan.failureThreshold: consecutive failures that abort a scan (0 = never)
#   scan.cacheDir:         cache scan reports here (empty = no cache)
#   scan.cacheTTL:         how long cached reports stay valid
#   scan.metricsAddr:      serve Prometheus metrics here while scanning
#   mcp.rateLimit:         MCP tool calls per second
#   mcp.burst:             MCP tool call burst

`
