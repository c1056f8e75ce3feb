package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jongio/urlkit/cliout"
)

func TestNew_Defaults(t *testing.T) {
	info := New("urlkit")
	if info.Version != "0.0.0-dev" {
		t.Errorf("expected Version '0.0.0-dev', got %q", info.Version)
	}
	if info.BuildDate != "unknown" {
		t.Errorf("expected BuildDate 'unknown', got %q", info.BuildDate)
	}
	if info.GitCommit != "unknown" {
		t.Errorf("expected GitCommit 'unknown', got %q", info.GitCommit)
	}
	if info.Name != "urlkit" {
		t.Errorf("expected Name 'urlkit', got %q", info.Name)
	}
}

func TestInfo_String(t *testing.T) {
	info := &Info{Version: "1.2.3", BuildDate: "2026-01-01", GitCommit: "abc123", Name: "urlkit"}
	expected := "urlkit version 1.2.3 (commit: abc123, built: 2026-01-01)"
	if got := info.String(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func runCommand(t *testing.T, format string, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cliout.SetOutput(&buf)
	cliout.NoColor()
	if err := cliout.SetFormat(format); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		cliout.SetOutput(nil)
		cliout.AutoColor()
		_ = cliout.SetFormat("default")
	})

	info := &Info{Version: "1.2.3", BuildDate: "2026-01-01", GitCommit: "abc123", Name: "urlkit"}
	cmd := NewCommand(info)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	return buf.String()
}

func TestNewCommand_Default(t *testing.T) {
	output := runCommand(t, "default")
	for _, want := range []string{"urlkit Version", "1.2.3", "2026-01-01", "abc123"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got %q", want, output)
		}
	}
}

func TestNewCommand_Quiet(t *testing.T) {
	output := runCommand(t, "default", "--quiet")
	if output != "1.2.3\n" {
		t.Errorf("expected only the version, got %q", output)
	}
}

func TestNewCommand_JSON(t *testing.T) {
	output := runCommand(t, "json")

	var got Info
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	if got.Version != "1.2.3" || got.GitCommit != "abc123" || got.Name != "urlkit" {
		t.Errorf("unexpected JSON info: %+v", got)
	}
}
