// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package security provides path and listener validation for files and
// addresses that reach urlkit from flags and config files.
package security

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrInvalidPath indicates a path contains invalid characters or patterns.
	ErrInvalidPath = errors.New("invalid path")
	// ErrPathTraversal indicates a path traversal attack attempt.
	ErrPathTraversal = errors.New("path traversal detected")
	// ErrInsecureFilePermissions indicates a file is group or world writable.
	ErrInsecureFilePermissions = errors.New("insecure file permissions")
	// ErrInvalidAddress indicates a listen address is not host:port.
	ErrInvalidAddress = errors.New("invalid listen address")
)

// resolve returns the cleaned absolute form of path with symlinks
// resolved. A path that does not exist yet resolves to its cleaned form.
func resolve(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path: %w", ErrInvalidPath, err)
	}
	cleanPath := filepath.Clean(absPath)

	realPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("%w: cannot resolve symbolic links: %w", ErrInvalidPath, err)
		}
		realPath = cleanPath
	}
	return realPath, nil
}

// ValidatePath checks that a user supplied path is non-empty, contains no
// parent directory references, and still contains none once symlinks are
// resolved.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: path contains parent directory reference", ErrPathTraversal)
	}

	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	if strings.Contains(resolved, "..") {
		return fmt.Errorf("%w: resolved path contains parent directory reference", ErrPathTraversal)
	}
	return nil
}

// ValidatePathWithinBases validates path and ensures it resolves inside one
// of allowedBases. It returns the resolved absolute path. With no bases it
// only validates the path structure.
func ValidatePathWithinBases(path string, allowedBases ...string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}
	realPath, err := resolve(path)
	if err != nil {
		return "", err
	}
	if len(allowedBases) == 0 {
		return realPath, nil
	}

	for _, base := range allowedBases {
		realBase, err := resolve(base)
		if err != nil {
			continue
		}
		if realPath == realBase || strings.HasPrefix(realPath, realBase+string(filepath.Separator)) {
			return realPath, nil
		}
	}
	return "", fmt.Errorf("%w: path is outside allowed directories", ErrPathTraversal)
}

// ValidateFilePermissions returns ErrInsecureFilePermissions when the file
// at path is group or world writable. The check is skipped on Windows,
// which uses ACLs.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Mode().Perm()&0o022 != 0 {
		return ErrInsecureFilePermissions
	}
	return nil
}

// ValidateListenAddr checks that addr is a host:port pair with a numeric
// port, as accepted by http.Server. An empty host listens on every
// interface.
func ValidateListenAddr(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if _, err := netip.ParseAddrPort(net.JoinHostPort("0.0.0.0", port)); err != nil {
		return fmt.Errorf("%w: port %q", ErrInvalidAddress, port)
	}
	if strings.ContainsAny(host, " /") {
		return fmt.Errorf("%w: host %q", ErrInvalidAddress, host)
	}
	return nil
}

// IsLoopbackAddr reports whether a listen address only accepts local
// connections.
func IsLoopbackAddr(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip, err := netip.ParseAddr(host)
	return err == nil && ip.IsLoopback()
}
