// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package urlparse

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates the input was empty after trimming whitespace.
	ErrEmptyInput = errors.New("empty input")
	// ErrInputTooLong indicates the input exceeds Options.MaxLength.
	ErrInputTooLong = errors.New("input too long")
	// ErrMissingScheme indicates there is no scheme before the first ':'.
	ErrMissingScheme = errors.New("missing scheme")
	// ErrInvalidSchemeCharacter indicates a byte before the first ':' is not
	// allowed in a scheme.
	ErrInvalidSchemeCharacter = errors.New("invalid scheme character")
	// ErrSpecialSchemeMissingFollowingSolidus indicates a special scheme is not
	// followed by "//".
	ErrSpecialSchemeMissingFollowingSolidus = errors.New("special scheme missing following solidus")
	// ErrHostMissing indicates the host section is empty or starts with a
	// path, query or fragment delimiter.
	ErrHostMissing = errors.New("host missing")
	// ErrInvalidPort indicates the port is not a decimal number in 0-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrUnsupportedScheme indicates a recognized scheme whose grammar is not
	// implemented.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	// ErrInvalidHost indicates a host that cannot be classified.
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidEncoding indicates percent-escapes that do not decode to UTF-8.
	ErrInvalidEncoding = errors.New("invalid percent-encoding")
)

// ParseError describes why an input could not be parsed. Offset is a byte
// offset into the trimmed input.
type ParseError struct {
	Kind   error
	Offset int
	Detail string
}

func newError(kind error, offset int, format string, args ...any) *ParseError {
	e := &ParseError{Kind: kind, Offset: offset}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Unwrap returns the sentinel error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

var kindNames = []struct {
	kind error
	name string
}{
	{ErrEmptyInput, "empty_input"},
	{ErrInputTooLong, "input_too_long"},
	{ErrMissingScheme, "missing_scheme"},
	{ErrInvalidSchemeCharacter, "invalid_scheme_character"},
	{ErrSpecialSchemeMissingFollowingSolidus, "special_scheme_missing_following_solidus"},
	{ErrHostMissing, "host_missing"},
	{ErrInvalidPort, "invalid_port"},
	{ErrUnsupportedScheme, "unsupported_scheme"},
	{ErrInvalidHost, "invalid_host"},
	{ErrInvalidEncoding, "invalid_encoding"},
}

// KindName returns a stable snake_case label for err's kind, "" for a nil
// error and "unknown" for errors not produced by this package.
func KindName(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kindNames {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return "unknown"
}
