// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerCreatesWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("mycomponent")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	if logger.Component() != "mycomponent" {
		t.Errorf("expected component 'mycomponent', got %q", logger.Component())
	}

	logger.Info("hello")
	output := buf.String()
	if !strings.Contains(output, "component=mycomponent") {
		t.Errorf("expected output to contain component=mycomponent, got: %s", output)
	}
}

func TestWithInputAddsContext(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("scan").WithInput(7)
	logger.Info("test")

	output := buf.String()
	if !strings.Contains(output, "component=scan") {
		t.Errorf("expected component=scan in output, got: %s", output)
	}
	if !strings.Contains(output, "input=7") {
		t.Errorf("expected input=7 in output, got: %s", output)
	}
}

func TestWithOperationAddsContext(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("comp").WithOperation("normalize")
	logger.Info("test")

	output := buf.String()
	if !strings.Contains(output, "component=comp") {
		t.Errorf("expected component=comp in output, got: %s", output)
	}
	if !strings.Contains(output, "operation=normalize") {
		t.Errorf("expected operation=normalize in output, got: %s", output)
	}
}

func TestWithFieldsAddsArbitraryFields(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("comp").WithFields("scheme", "https", "status", "ok")
	logger.Info("test")

	output := buf.String()
	if !strings.Contains(output, "scheme=https") {
		t.Errorf("expected scheme=https in output, got: %s", output)
	}
	if !strings.Contains(output, "status=ok") {
		t.Errorf("expected status=ok in output, got: %s", output)
	}
}

func TestChainingContexts(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("scanner").WithOperation("scan").WithInput(3)
	logger.Info("chain test")

	output := buf.String()
	if !strings.Contains(output, "component=scanner") {
		t.Errorf("expected component=scanner, got: %s", output)
	}
	if !strings.Contains(output, "operation=scan") {
		t.Errorf("expected operation=scan, got: %s", output)
	}
	if !strings.Contains(output, "input=3") {
		t.Errorf("expected input=3, got: %s", output)
	}
	// Component should still be the original
	if logger.Component() != "scanner" {
		t.Errorf("expected component 'scanner', got %q", logger.Component())
	}
}

func TestComponentReturnsCorrectName(t *testing.T) {
	SetupLogger(false, false)

	logger := NewLogger("test-component")
	if logger.Component() != "test-component" {
		t.Errorf("expected 'test-component', got %q", logger.Component())
	}

	// Chaining should preserve the component name
	chained := logger.WithInput(1).WithOperation("op")
	if chained.Component() != "test-component" {
		t.Errorf("expected 'test-component' after chaining, got %q", chained.Component())
	}
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(*ComponentLogger, string, ...any)
		level   string
	}{
		{"debug", (*ComponentLogger).Debug, "DEBUG"},
		{"info", (*ComponentLogger).Info, "INFO"},
		{"warn", (*ComponentLogger).Warn, "WARN"},
		{"error", (*ComponentLogger).Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupLoggerWithWriter(&buf, true, false) // debug=true to capture all levels

			logger := NewLogger("lvl-test")
			tt.logFunc(logger, "level test msg", "k", "v")

			output := buf.String()
			if !strings.Contains(output, tt.level) {
				t.Errorf("expected level %s in output, got: %s", tt.level, output)
			}
			if !strings.Contains(output, "level test msg") {
				t.Errorf("expected message in output, got: %s", output)
			}
		})
	}
}

func TestLogLevelsStructured(t *testing.T) {
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, true, true) // structured JSON

	logger := NewLogger("json-test")
	logger.Info("structured msg", "count", 42)

	output := buf.String()
	if !strings.Contains(output, `"component":"json-test"`) {
		t.Errorf("expected component in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"msg":"structured msg"`) {
		t.Errorf("expected msg in JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"count":42`) {
		t.Errorf("expected count in JSON output, got: %s", output)
	}
}

func TestEnabled(t *testing.T) {
	t.Setenv(EnvDebug, "")
	var buf bytes.Buffer
	SetupLoggerWithWriter(&buf, false, false)

	logger := NewLogger("enabled")
	if logger.Enabled(LevelDebug) {
		t.Error("expected debug to be disabled")
	}
	if !logger.Enabled(LevelError) {
		t.Error("expected error to be enabled")
	}
}
