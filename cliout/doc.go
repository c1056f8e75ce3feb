// Package cliout renders urlkit command output for people and for scripts.
//
// # Output Formats
//
// Two formats are supported:
//   - default: human-readable text with colors and status symbols
//   - json: structured JSON for automation
//
// Set the format once from the --output flag:
//
//	if err := cliout.SetFormat(cfg.Output); err != nil {
//	    return err
//	}
//
// Print takes both the JSON payload and a text formatter, and uses whichever
// the format calls for:
//
//	err := cliout.Print(report, func() {
//	    cliout.Success("%d of %d URLs valid", report.Valid, report.Total)
//	})
//
// # Color
//
// Colors are emitted only when stdout is a terminal and NO_COLOR is unset.
// ForceColor and NoColor override detection; AutoColor restores it.
//
// # Tables
//
// Table aligns columns by rune count, so decoded non-ASCII text lines up:
//
//	cliout.Table([]string{"Input", "Status"}, []cliout.TableRow{
//	    {"Input": "https://example.com", "Status": cliout.Status("valid")},
//	})
//
// # Testing
//
// SetOutput redirects everything the package writes. Pass nil to restore
// os.Stdout.
package cliout
