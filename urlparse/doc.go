// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package urlparse implements a single-pass URL scanner and normalizer.
//
// Parse consumes the trimmed input once, left to right. For each component
// (scheme, userinfo, host, path, query, fragment) it finds the component's end
// delimiter, percent-encodes the component under its own encode set, appends
// the result to one output buffer and records the buffer length as that
// component's boundary. The resulting URL holds the serialized form plus the
// boundary offsets, so every accessor is an O(1) slice.
//
// # Basic Usage
//
//	u, err := urlparse.Parse("HTTP://user@www.example.com/doc//glossary?q=a b#top")
//	if err != nil {
//		return fmt.Errorf("invalid URL: %w", err)
//	}
//	fmt.Println(u.String())   // http://user@www.example.com/doc/glossary?q=a%20b#top
//	fmt.Println(u.Scheme())   // http
//	fmt.Println(u.Hostname()) // www.example.com
//	fmt.Println(u.Query())    // q=a%20b
//
// # Offsets
//
// All offsets are measured in the serialized (encoded) output, never in the
// input text. Offsets reports them:
//
//	0 <= SchemeEnd <= UserinfoEnd <= HostEnd <= PathEnd <= QueryEnd <= Len
//
// # Schemes
//
// The special schemes http, https, ws, wss and ftp require "//" and a host.
// The file scheme is recognized but rejected with ErrUnsupportedScheme.
// Any other syntactically valid scheme uses the generic grammar: an authority
// when "//" follows the scheme, an opaque path otherwise.
//
// # Modes
//
// Parse is strict. ParseLenient tolerates a missing or repeated "//" after a
// special scheme and an empty host, and truncates the result after the host
// when the port is invalid (see URL.Truncated). Scheme errors fail in both
// modes.
//
// # Errors
//
// Every failure is a *ParseError that unwraps to one of the Err* sentinels:
//
//	if errors.Is(err, urlparse.ErrHostMissing) {
//		// ...
//	}
//
// # Decomposition
//
// HostInfo, Credentials and QueryPairs decode the offset form into richer
// values: a classified host with its public suffix, the decoded user and
// password, and the ordered query pairs.
package urlparse
