// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jongio/urlkit/urlparse"
)

// Flag names shared with the CLI.
const (
	FlagOutput           = "output"
	FlagDebug            = "debug"
	FlagLenient          = "lenient"
	FlagMaxLength        = "max-length"
	FlagWorkers          = "workers"
	FlagRateLimit        = "rate-limit"
	FlagBurst            = "burst"
	FlagFailureThreshold = "failure-threshold"
	FlagCacheDir         = "cache-dir"
	FlagCacheTTL         = "cache-ttl"
	FlagMetricsAddr      = "metrics-addr"
)

// BindFlags registers the flags every command shares. Defaults are only
// shown in help; ApplyFlags copies values the user actually set.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringP(FlagOutput, "o", d.Output, "Output format (default, json)")
	fs.Bool(FlagDebug, false, "Enable debug logging")
	fs.Bool(FlagLenient, false, "Parse leniently: repair missing or extra slashes and truncate at invalid ports")
	fs.Int(FlagMaxLength, d.MaxLength, "Reject inputs longer than this many bytes (0 = unlimited)")
}

// BindScanFlags registers the scan command's flags.
func BindScanFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Int(FlagWorkers, d.Scan.Workers, "Number of concurrent parses")
	fs.Float64(FlagRateLimit, d.Scan.RateLimit, "Maximum parses per second (0 = unlimited)")
	fs.Int(FlagBurst, d.Scan.Burst, "Rate limiter burst (0 = twice the rate)")
	fs.Int(FlagFailureThreshold, d.Scan.FailureThreshold, "Abort after this many consecutive failures (0 = never)")
	fs.String(FlagCacheDir, d.Scan.CacheDir, "Cache scan reports in this directory")
	fs.Duration(FlagCacheTTL, d.Scan.CacheTTL, "How long cached reports stay valid")
	fs.String(FlagMetricsAddr, d.Scan.MetricsAddr, "Serve Prometheus metrics on this address while scanning (e.g. 127.0.0.1:9464)")
}

// ApplyFlags overlays every flag in fs that was explicitly set. Flags that
// were never registered are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return err == nil && f != nil && f.Changed
	}

	if changed(FlagOutput) {
		c.Output, err = fs.GetString(FlagOutput)
	}
	if changed(FlagDebug) {
		var debug bool
		if debug, err = fs.GetBool(FlagDebug); debug {
			c.Log.Level = "debug"
		}
	}
	if changed(FlagLenient) {
		var lenient bool
		if lenient, err = fs.GetBool(FlagLenient); err == nil {
			c.Mode = urlparse.Strict.String()
			if lenient {
				c.Mode = urlparse.Lenient.String()
			}
		}
	}
	if changed(FlagMaxLength) {
		c.MaxLength, err = fs.GetInt(FlagMaxLength)
	}
	if changed(FlagWorkers) {
		c.Scan.Workers, err = fs.GetInt(FlagWorkers)
	}
	if changed(FlagRateLimit) {
		c.Scan.RateLimit, err = fs.GetFloat64(FlagRateLimit)
	}
	if changed(FlagBurst) {
		c.Scan.Burst, err = fs.GetInt(FlagBurst)
	}
	if changed(FlagFailureThreshold) {
		c.Scan.FailureThreshold, err = fs.GetInt(FlagFailureThreshold)
	}
	if changed(FlagCacheDir) {
		c.Scan.CacheDir, err = fs.GetString(FlagCacheDir)
	}
	if changed(FlagCacheTTL) {
		c.Scan.CacheTTL, err = fs.GetDuration(FlagCacheTTL)
	}
	if changed(FlagMetricsAddr) {
		c.Scan.MetricsAddr, err = fs.GetString(FlagMetricsAddr)
	}

	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}
