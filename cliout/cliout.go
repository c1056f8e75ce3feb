package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Format represents the output format.
type Format string

const (
	// FormatDefault is the default human-readable format.
	FormatDefault Format = "default"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ANSI color codes for consistent styling
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red          = "\033[31m"
	Green        = "\033[32m"
	Yellow       = "\033[33m"
	Cyan         = "\033[36m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightBlue   = "\033[94m"
)

// Unicode symbols and their ASCII fallbacks.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"

	ASCIICheck   = "[+]"
	ASCIICross   = "[-]"
	ASCIIWarning = "[!]"
	ASCIIInfo    = "[i]"
)

// EnvNoColor disables color when set to any value (https://no-color.org).
const EnvNoColor = "NO_COLOR"

type colorMode int

const (
	colorAuto colorMode = iota
	colorOn
	colorOff
)

var (
	mu           sync.RWMutex
	globalFormat = FormatDefault
	color        = colorAuto
	out          io.Writer // nil means os.Stdout at call time
)

var supportsUnicode = detectUnicodeSupport()

// detectUnicodeSupport reports whether the terminal can display the
// Unicode status symbols. Legacy Windows consoles cannot.
func detectUnicodeSupport() bool {
	if runtime.GOOS != "windows" {
		return true
	}
	for _, name := range []string{"WT_SESSION", "ConEmuPID", "PSModulePath", "TERM"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return os.Getenv("TERM_PROGRAM") == "vscode"
}

func icon(unicode, ascii string) string {
	if supportsUnicode {
		return unicode
	}
	return ascii
}

// SetOutput redirects all output to w. Passing nil restores os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

func writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if out == nil {
		return os.Stdout
	}
	return out
}

// ForceColor enables color output regardless of terminal detection.
func ForceColor() {
	mu.Lock()
	color = colorOn
	mu.Unlock()
}

// NoColor disables color output.
func NoColor() {
	mu.Lock()
	color = colorOff
	mu.Unlock()
}

// AutoColor restores terminal detection.
func AutoColor() {
	mu.Lock()
	color = colorAuto
	mu.Unlock()
}

// ColorEnabled reports whether output is colored: forced on, or the output
// is a terminal and NO_COLOR is unset.
func ColorEnabled() bool {
	mu.RLock()
	mode := color
	mu.RUnlock()

	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	}
	if _, set := os.LookupEnv(EnvNoColor); set {
		return false
	}
	f, ok := writer().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func paint(code, s string) string {
	if !ColorEnabled() {
		return s
	}
	return code + s + Reset
}

// SetFormat sets the global output format.
func SetFormat(format string) error {
	var f Format
	switch format {
	case "default", "":
		f = FormatDefault
	case "json":
		f = FormatJSON
	default:
		return fmt.Errorf("invalid output format: %s (valid options: default, json)", format)
	}
	mu.Lock()
	globalFormat = f
	mu.Unlock()
	return nil
}

// GetFormat returns the current output format.
func GetFormat() Format {
	mu.RLock()
	defer mu.RUnlock()
	return globalFormat
}

// IsJSON returns true if the output format is JSON.
func IsJSON() bool {
	return GetFormat() == FormatJSON
}

// PrintJSON prints data as indented JSON.
func PrintJSON(data any) error {
	encoder := json.NewEncoder(writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Print outputs data in the configured format: JSON marshals data, the
// default format calls formatter.
func Print(data any, formatter func()) error {
	if IsJSON() {
		return PrintJSON(data)
	}
	formatter()
	return nil
}

func printf(format string, args ...any) {
	_, _ = fmt.Fprintf(writer(), format, args...)
}

// Header prints a bold header underlined with '='.
func Header(text string) {
	printf("\n%s\n%s\n", paint(Bold, text), strings.Repeat("=", len(text)))
}

// Success prints a success message with a green checkmark.
func Success(format string, args ...any) {
	printf("%s %s\n", paint(BrightGreen, icon(SymbolCheck, ASCIICheck)), fmt.Sprintf(format, args...))
}

// Error prints an error message with a red cross.
func Error(format string, args ...any) {
	printf("%s %s\n", paint(BrightRed, icon(SymbolCross, ASCIICross)), fmt.Sprintf(format, args...))
}

// Warning prints a warning message with a yellow triangle.
func Warning(format string, args ...any) {
	printf("%s  %s\n", paint(BrightYellow, icon(SymbolWarning, ASCIIWarning)), fmt.Sprintf(format, args...))
}

// Info prints an info message with a blue info icon.
func Info(format string, args ...any) {
	printf("%s  %s\n", paint(BrightBlue, icon(SymbolInfo, ASCIIInfo)), fmt.Sprintf(format, args...))
}

// Newline prints a blank line.
func Newline() {
	printf("\n")
}

// Plain prints plain text without any formatting.
func Plain(format string, args ...any) {
	printf(format+"\n", args...)
}

// Label prints an indented label and value pair.
func Label(label, value string) {
	printf("   %s %s\n", paint(Dim, fmt.Sprintf("%-12s", label+":")), value)
}

// Muted returns dim text.
func Muted(format string, args ...any) string {
	return paint(Dim, fmt.Sprintf(format, args...))
}

// URL returns a URL in bright blue.
func URL(url string) string {
	return paint(BrightBlue, url)
}

// Count returns a bold count.
func Count(n int) string {
	return paint(Bold, fmt.Sprintf("%d", n))
}

// Status returns a status word colored by meaning.
func Status(status string) string {
	switch strings.ToLower(status) {
	case "ok", "valid", "success":
		return paint(BrightGreen, status)
	case "truncated", "warning", "cached":
		return paint(BrightYellow, status)
	case "error", "invalid", "failed":
		return paint(BrightRed, status)
	default:
		return status
	}
}

// TableRow represents a row in a table as a map of column header to value.
type TableRow map[string]string

// Table prints a simple aligned table with the given headers and rows.
// Column widths count runes so percent-decoded text lines up.
func Table(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	widths := make(map[string]int, len(headers))
	for _, header := range headers {
		widths[header] = len([]rune(header))
	}
	for _, row := range rows {
		for _, header := range headers {
			widths[header] = max(widths[header], len([]rune(row[header])))
		}
	}

	pad := func(s string, width int) string {
		return s + strings.Repeat(" ", width-len([]rune(s)))
	}

	var b strings.Builder
	b.WriteString("   ")
	for _, header := range headers {
		b.WriteString(paint(Bold, pad(header, widths[header])) + "  ")
	}
	b.WriteString("\n   ")
	for _, header := range headers {
		b.WriteString(strings.Repeat("─", widths[header]) + "  ")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("   ")
		for _, header := range headers {
			b.WriteString(pad(row[header], widths[header]) + "  ")
		}
		b.WriteString("\n")
	}
	printf("%s", b.String())
}
