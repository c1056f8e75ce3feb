// Package browser opens validated URLs in the user's web browser.
//
// Launching is delegated to github.com/pkg/browser, which uses "cmd /c start"
// on Windows, "open" on macOS and xdg-open on Linux. Before anything is
// launched the URL is validated with urlutil and replaced by its normalized
// serialization, so only well-formed http and https URLs reach the shell.
//
// # Browser Targets
//
//   - TargetDefault: the system default browser
//   - TargetNone: validate and normalize, but open nothing
//
// Setting URLKIT_BROWSER=none overrides the caller's target, which keeps CI
// runs from spawning browsers.
//
// # Example Usage
//
//	opened, err := browser.Launch(ctx, browser.LaunchOptions{
//	    URL:    "HTTPS://Example.com//docs",
//	    Target: browser.TargetDefault,
//	})
//	// opened == "https://Example.com/docs"
//
// Launch waits for the launcher command, bounded by LaunchOptions.Timeout and
// ctx. Rejected URLs return an error before any process starts.
package browser
