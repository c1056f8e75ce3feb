// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package security

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "absolute path", path: "/tmp/urls.txt"},
		{name: "current directory", path: "."},
		{name: "relative path", path: "lists/seed.txt"},
		{name: "empty path", path: "", wantErr: ErrInvalidPath},
		{name: "parent traversal", path: "../../../etc/passwd", wantErr: ErrPathTraversal},
		{name: "dots in middle", path: "/usr/../etc/passwd", wantErr: ErrPathTraversal},
		{name: "dots at end", path: "/tmp/..", wantErr: ErrPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePath() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath_WithSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink test more reliable on Unix-like systems")
	}

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target.txt")
	link := filepath.Join(tmpDir, "link.txt")

	if err := os.WriteFile(target, []byte("https://example.com"), 0644); err != nil {
		t.Fatalf("Failed to create target file: %v", err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Failed to create symlink (may need privileges): %v", err)
	}

	if err := ValidatePath(link); err != nil {
		t.Errorf("ValidatePath() with valid symlink should pass, got: %v", err)
	}
}

func TestValidatePathWithinBases(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "entry.json")
	if err := os.WriteFile(testFile, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ValidatePathWithinBases(testFile, tmpDir)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if result == "" {
		t.Fatal("expected non-empty result")
	}

	_, err = ValidatePathWithinBases(testFile, filepath.Join(tmpDir, "subdir"))
	if !errors.Is(err, ErrPathTraversal) {
		t.Fatalf("expected ErrPathTraversal for path outside base, got: %v", err)
	}

	if _, err := ValidatePathWithinBases(testFile); err != nil {
		t.Fatalf("expected no error without bases, got: %v", err)
	}

	if _, err := ValidatePathWithinBases("../../../etc/passwd", tmpDir); err == nil {
		t.Fatal("expected error for path traversal")
	}

	// Prefix match alone is not containment.
	sibling := tmpDir + "-sibling"
	if _, err := ValidatePathWithinBases(filepath.Join(sibling, "x"), tmpDir); err == nil {
		t.Fatal("expected error for sibling directory sharing a prefix")
	}
}

func TestValidatePathWithinBases_NonExistentFile(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := ValidatePathWithinBases(filepath.Join(tmpDir, "future.json"), tmpDir)
	if err != nil {
		t.Errorf("non-existent path within base should pass, got: %v", err)
	}
	if result == "" {
		t.Error("expected non-empty result")
	}
}

func TestValidatePathWithinBases_SymlinkedBase(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink tests more reliable on Unix")
	}

	tmpDir := t.TempDir()
	realBase := filepath.Join(tmpDir, "realbase")
	if err := os.MkdirAll(realBase, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(realBase, "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	linkBase := filepath.Join(tmpDir, "linkbase")
	if err := os.Symlink(realBase, linkBase); err != nil {
		t.Skipf("Cannot create symlink: %v", err)
	}

	if _, err := ValidatePathWithinBases(filepath.Join(linkBase, "file.txt"), linkBase); err != nil {
		t.Errorf("expected path within symlinked base to pass, got: %v", err)
	}
}

func TestValidateFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows uses ACLs")
	}

	tmpFile := filepath.Join(t.TempDir(), "urlkit.yaml")
	if err := os.WriteFile(tmpFile, []byte("mode: strict\n"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.Chmod(tmpFile, 0644); err != nil {
		t.Fatal(err)
	}

	if err := ValidateFilePermissions(tmpFile); err != nil {
		t.Errorf("ValidateFilePermissions() with 0644 should pass, got error: %v", err)
	}

	for _, mode := range []os.FileMode{0666, 0664} {
		if err := os.Chmod(tmpFile, mode); err != nil {
			t.Fatalf("Failed to chmod file: %v", err)
		}
		if err := ValidateFilePermissions(tmpFile); !errors.Is(err, ErrInsecureFilePermissions) {
			t.Errorf("ValidateFilePermissions() with %o = %v, want ErrInsecureFilePermissions", mode, err)
		}
	}

	if err := ValidateFilePermissions(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ValidateFilePermissions() with non-existent file should fail")
	}
}

func TestValidateListenAddr(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{":9464", false},
		{"127.0.0.1:9464", false},
		{"localhost:0", false},
		{"[::1]:8080", false},
		{"9464", true},
		{"host:port", true},
		{"host:70000", true},
		{"bad host:80", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := ValidateListenAddr(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateListenAddr(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("expected ErrInvalidAddress, got %v", err)
			}
		})
	}
}

func TestIsLoopbackAddr(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"127.0.0.1:9464", true},
		{"[::1]:9464", true},
		{"localhost:9464", true},
		{":9464", false},
		{"0.0.0.0:9464", false},
		{"10.0.0.5:9464", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := IsLoopbackAddr(tt.addr); got != tt.want {
				t.Errorf("IsLoopbackAddr(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}
