// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File permissions
const (
	// DirPermission is the default permission for creating directories (rwxr-x---)
	DirPermission = 0750
	// FilePermission is the default permission for creating files (rw-r--r--)
	FilePermission = 0644
)

// renameAttempts bounds retries of the final rename in AtomicWriteFile.
const renameAttempts = 5

// AtomicWriteJSON writes data as indented JSON to path atomically with
// FilePermission.
func AtomicWriteJSON(path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return AtomicWriteFile(path, jsonData, FilePermission)
}

// AtomicWriteFile writes raw bytes to path atomically. Data goes to a
// uniquely named temp file in the same directory, which is synced and then
// renamed over path, so readers never observe a partial file.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = tmpFile.Close() }()

	fail := func(step string, err error) error {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to %s: %w", step, err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		return fail("write temp file", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("sync temp file", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fail("close temp file", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fail("set file permissions", err)
	}

	// Concurrent writers on some platforms make rename fail transiently.
	var renameErr error
	for attempt := 0; attempt < renameAttempts; attempt++ {
		if renameErr = os.Rename(tmpPath, path); renameErr == nil {
			return nil
		}
		if attempt < renameAttempts-1 {
			time.Sleep(time.Duration(20*(attempt+1)) * time.Millisecond)
		}
	}
	return fail("rename temp file", renameErr)
}

// ReadJSON reads JSON from path into target.
// Returns nil error if the file doesn't exist (target unchanged).
func ReadJSON(path string, target any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- caller controls the path
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// CacheMetadata is stored alongside cached data to track validity.
type CacheMetadata struct {
	// CachedAt is when the entry was written.
	CachedAt time.Time `json:"cachedAt"`
	// Version is the writer's cache version.
	Version string `json:"version,omitempty"`
}

// Valid reports whether an entry written with this metadata is still
// usable for a reader with the given ttl and version. A zero ttl never
// expires and an empty version matches anything.
func (m CacheMetadata) Valid(ttl time.Duration, version string, now time.Time) bool {
	if ttl > 0 && now.Sub(m.CachedAt) > ttl {
		return false
	}
	if version != "" && m.Version != version {
		return false
	}
	return true
}
