// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	pkgbrowser "github.com/pkg/browser"

	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/urlutil"
)

// Target represents the browser target for launching URLs.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// EnvTarget overrides the target passed by callers, so CI can set it to
// "none".
const EnvTarget = "URLKIT_BROWSER"

// DefaultTimeout bounds how long Launch waits for the launcher command.
const DefaultTimeout = 5 * time.Second

// openURL is replaced in tests.
var openURL = pkgbrowser.OpenURL

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	for _, valid := range ValidTargets() {
		if Target(target) == valid {
			return true
		}
	}
	return false
}

// ResolveTarget applies the URLKIT_BROWSER override and maps the empty
// target to TargetDefault.
func ResolveTarget(target Target) Target {
	if env := strings.ToLower(strings.TrimSpace(os.Getenv(EnvTarget))); IsValid(env) {
		target = Target(env)
	}
	if target == TargetNone {
		return TargetNone
	}
	return TargetDefault
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// URL to open
	URL string
	// Target browser to use
	Target Target
	// Timeout for the launch command (default 5 seconds)
	Timeout time.Duration
}

// Launch validates and normalizes opts.URL, then opens it in the browser
// chosen by the target. It returns the URL that was (or would have been)
// opened. Only http and https URLs are accepted.
func Launch(ctx context.Context, opts LaunchOptions) (string, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	parsed, err := urlutil.Parse(opts.URL)
	if err != nil {
		return "", fmt.Errorf("refusing to open URL: %w", err)
	}
	target := parsed.String()

	log := logutil.NewLogger("browser").WithFields("url", target)
	if ResolveTarget(opts.Target) == TargetNone {
		log.Debug("browser launch disabled")
		return target, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- openURL(target) }()

	select {
	case err := <-done:
		if err != nil {
			return target, fmt.Errorf("failed to open browser: %w", err)
		}
		log.Debug("browser launched")
		return target, nil
	case <-ctx.Done():
		return target, fmt.Errorf("failed to open browser: %w", ctx.Err())
	}
}

// GetTargetDisplayName returns a human-readable name for the browser target.
func GetTargetDisplayName(target Target) string {
	if ResolveTarget(target) == TargetNone {
		return "none"
	}
	return "default browser"
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
