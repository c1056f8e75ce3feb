// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package urlparse

import (
	"encoding/json"
	"strings"
)

// URL is a parsed URL: its serialized form plus the boundary offsets of each
// component. A URL is immutable and safe for concurrent readers.
type URL struct {
	serialized   string
	scheme       Scheme
	hasAuthority bool
	truncated    bool
	port         uint16
	hasPort      bool

	schemeEnd   int
	userinfoEnd int
	hostnameEnd int
	hostEnd     int
	pathEnd     int
	queryEnd    int
}

// Offsets are component boundaries in the serialized form.
type Offsets struct {
	SchemeEnd   int `json:"schemeEnd"`
	UserinfoEnd int `json:"userinfoEnd"`
	HostEnd     int `json:"hostEnd"`
	PathEnd     int `json:"pathEnd"`
	QueryEnd    int `json:"queryEnd"`
	Len         int `json:"len"`
}

// String returns the serialized, percent-encoded form.
func (u *URL) String() string {
	return u.serialized
}

// MarshalText implements encoding.TextMarshaler.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.serialized), nil
}

// MarshalJSON encodes the URL as its Components.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Components())
}

// Display returns the serialized form with percent-escapes decoded.
func (u *URL) Display() string {
	return decodeLossy(u.serialized)
}

// Offsets returns the component boundaries.
func (u *URL) Offsets() Offsets {
	return Offsets{
		SchemeEnd:   u.schemeEnd,
		UserinfoEnd: u.userinfoEnd,
		HostEnd:     u.hostEnd,
		PathEnd:     u.pathEnd,
		QueryEnd:    u.queryEnd,
		Len:         len(u.serialized),
	}
}

// Truncated reports whether a lenient parse dropped everything after the
// hostname because the port was invalid.
func (u *URL) Truncated() bool {
	return u.truncated
}

// Scheme returns the lower-cased scheme.
func (u *URL) Scheme() string {
	return u.serialized[:u.schemeEnd]
}

// SchemeInfo returns the tagged scheme.
func (u *URL) SchemeInfo() Scheme {
	return u.scheme
}

// HasAuthority reports whether the scheme was followed by "//".
func (u *URL) HasAuthority() bool {
	return u.hasAuthority
}

func (u *URL) authorityStart() int {
	if u.hasAuthority {
		return u.schemeEnd + len("://")
	}
	return u.schemeEnd + len(":")
}

// Authority returns userinfo, host and port, without the leading "//".
func (u *URL) Authority() string {
	return u.serialized[u.authorityStart():u.hostEnd]
}

// Userinfo returns "username[:password]" without the trailing '@'.
func (u *URL) Userinfo() string {
	return strings.TrimSuffix(u.serialized[u.authorityStart():u.userinfoEnd], "@")
}

// Username returns the encoded username.
func (u *URL) Username() string {
	name, _, _ := strings.Cut(u.Userinfo(), ":")
	return name
}

// Password returns the encoded password and whether one is present.
func (u *URL) Password() (string, bool) {
	_, password, ok := strings.Cut(u.Userinfo(), ":")
	return password, ok
}

// Host returns the host including an explicit ":port".
func (u *URL) Host() string {
	return u.serialized[u.userinfoEnd:u.hostEnd]
}

// Hostname returns the host without the port.
func (u *URL) Hostname() string {
	return u.serialized[u.userinfoEnd:u.hostnameEnd]
}

// Port returns the explicit port, or the scheme's default port.
func (u *URL) Port() (uint16, bool) {
	if u.hasPort {
		return u.port, true
	}
	return u.scheme.DefaultPort()
}

// ExplicitPort returns the port written in the URL, if any.
func (u *URL) ExplicitPort() (uint16, bool) {
	return u.port, u.hasPort
}

// Path returns the encoded path.
func (u *URL) Path() string {
	return u.serialized[u.hostEnd:u.pathEnd]
}

// PathAndQuery returns the path followed by "?query" when a query is present.
func (u *URL) PathAndQuery() string {
	return u.serialized[u.hostEnd:u.queryEnd]
}

// HasQuery reports whether the URL has a '?', even with an empty query.
func (u *URL) HasQuery() bool {
	return u.queryEnd > u.pathEnd
}

// Query returns the encoded query without the leading '?'.
func (u *URL) Query() string {
	if !u.HasQuery() {
		return ""
	}
	return u.serialized[u.pathEnd+1 : u.queryEnd]
}

// HasFragment reports whether the URL has a '#', even with an empty fragment.
func (u *URL) HasFragment() bool {
	return len(u.serialized) > u.queryEnd
}

// Fragment returns the encoded fragment without the leading '#'.
func (u *URL) Fragment() string {
	if !u.HasFragment() {
		return ""
	}
	return u.serialized[u.queryEnd+1:]
}
