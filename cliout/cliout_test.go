package cliout

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// capture redirects output to a buffer for the duration of fn.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	fn()
	return buf.String()
}

func resetState(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = SetFormat("default")
		AutoColor()
		SetOutput(nil)
	})
}

func TestSetFormat(t *testing.T) {
	resetState(t)

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"default", FormatDefault, false},
		{"json", FormatJSON, false},
		{"", FormatDefault, false},
		{"yaml", FormatDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_ = SetFormat("default")
			err := SetFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if GetFormat() != tt.want {
				t.Errorf("GetFormat() = %v, want %v", GetFormat(), tt.want)
			}
			if IsJSON() != (tt.want == FormatJSON) {
				t.Errorf("IsJSON() = %v for %v", IsJSON(), tt.want)
			}
		})
	}
}

func TestColorEnabled(t *testing.T) {
	resetState(t)

	ForceColor()
	if !ColorEnabled() {
		t.Error("expected color after ForceColor")
	}
	NoColor()
	if ColorEnabled() {
		t.Error("expected no color after NoColor")
	}

	AutoColor()
	SetOutput(&bytes.Buffer{})
	if ColorEnabled() {
		t.Error("expected no color when writing to a buffer")
	}

	t.Setenv(EnvNoColor, "1")
	SetOutput(os.Stdout)
	if ColorEnabled() {
		t.Error("expected no color with NO_COLOR set")
	}
}

func TestMessages(t *testing.T) {
	resetState(t)
	NoColor()

	tests := []struct {
		name string
		fn   func()
		want []string
	}{
		{"success", func() { Success("parsed %d urls", 3) }, []string{"parsed 3 urls"}},
		{"error", func() { Error("bad input: %s", "x") }, []string{"bad input: x"}},
		{"warning", func() { Warning("truncated") }, []string{"truncated"}},
		{"info", func() { Info("cache hit") }, []string{"cache hit"}},
		{"header", func() { Header("Scan") }, []string{"Scan\n====\n"}},
		{"label", func() { Label("Scheme", "https") }, []string{"Scheme:", "https"}},
		{"plain", func() { Plain("%s=%d", "a", 1) }, []string{"a=1\n"}},
		{"newline", Newline, []string{"\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := capture(t, tt.fn)
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output %q should contain %q", output, want)
				}
			}
			if strings.Contains(output, "\033[") {
				t.Errorf("output should not contain ANSI codes with color off: %q", output)
			}
		})
	}
}

func TestSuccessUsesColorWhenForced(t *testing.T) {
	resetState(t)
	ForceColor()

	output := capture(t, func() { Success("done") })
	if !strings.Contains(output, BrightGreen) || !strings.Contains(output, Reset) {
		t.Errorf("expected green ANSI codes, got %q", output)
	}
}

func TestInlineStyles(t *testing.T) {
	resetState(t)

	NoColor()
	if got := URL("https://example.com"); got != "https://example.com" {
		t.Errorf("URL() = %q", got)
	}
	if got := Count(7); got != "7" {
		t.Errorf("Count() = %q", got)
	}
	if got := Muted("%d ms", 5); got != "5 ms" {
		t.Errorf("Muted() = %q", got)
	}

	ForceColor()
	if got := URL("x"); got != BrightBlue+"x"+Reset {
		t.Errorf("URL() colored = %q", got)
	}
}

func TestStatus(t *testing.T) {
	resetState(t)
	ForceColor()

	tests := []struct {
		status string
		color  string
	}{
		{"valid", BrightGreen},
		{"OK", BrightGreen},
		{"truncated", BrightYellow},
		{"cached", BrightYellow},
		{"invalid", BrightRed},
		{"error", BrightRed},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := Status(tt.status); got != tt.color+tt.status+Reset {
				t.Errorf("Status(%q) = %q", tt.status, got)
			}
		})
	}
	if got := Status("other"); got != "other" {
		t.Errorf("Status(other) = %q, want uncolored", got)
	}
}

func TestTable(t *testing.T) {
	resetState(t)
	NoColor()

	if output := capture(t, func() { Table([]string{"Input", "Status"}, nil) }); output != "" {
		t.Errorf("expected empty output for empty rows, got: %q", output)
	}

	headers := []string{"Input", "Status"}
	rows := []TableRow{
		{"Input": "https://example.com", "Status": "valid"},
		{"Input": "ftp:x", "Status": "invalid"},
		{"Input": "http://h/ü", "Status": "valid"},
	}
	output := capture(t, func() { Table(headers, rows) })

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), output)
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("second line should be a separator, got %q", lines[1])
	}
	// Every status column starts at the same rune offset.
	col := strings.Index(lines[0], "Status")
	for _, line := range lines[2:] {
		runes := []rune(line)
		if len(runes) <= col || (string(runes[col:col+5]) != "valid" && string(runes[col:col+7]) != "invalid") {
			t.Errorf("misaligned row %q (status column at %d)", line, col)
		}
	}
}

func TestPrintJSON(t *testing.T) {
	resetState(t)

	data := map[string]any{"url": "https://example.com/", "valid": true}
	output := capture(t, func() {
		if err := PrintJSON(data); err != nil {
			t.Errorf("PrintJSON failed: %v", err)
		}
	})

	var decoded map[string]any
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["url"] != "https://example.com/" || decoded["valid"] != true {
		t.Errorf("unexpected JSON: %v", decoded)
	}
	if !strings.Contains(output, "\n  \"url\"") {
		t.Errorf("expected indented JSON, got %q", output)
	}
}

func TestPrint(t *testing.T) {
	resetState(t)

	called := false
	output := capture(t, func() {
		if err := Print(map[string]int{"n": 1}, func() { called = true; Plain("text") }); err != nil {
			t.Fatal(err)
		}
	})
	if !called || output != "text\n" {
		t.Errorf("default format should call formatter, got %q (called=%v)", output, called)
	}

	_ = SetFormat("json")
	called = false
	output = capture(t, func() {
		if err := Print(map[string]int{"n": 1}, func() { called = true }); err != nil {
			t.Fatal(err)
		}
	})
	if called {
		t.Error("json format should not call formatter")
	}
	if !strings.Contains(output, `"n": 1`) {
		t.Errorf("expected JSON output, got %q", output)
	}
}
