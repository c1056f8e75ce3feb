// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package urlparse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const upperHex = "0123456789ABCDEF"

// EncodeSet is the set of ASCII bytes that must be percent-encoded within a
// URL component. Bytes outside ASCII are always encoded.
type EncodeSet struct {
	bits [2]uint64
}

// Add returns a copy of s that also encodes chars.
func (s EncodeSet) Add(chars ...byte) EncodeSet {
	for _, c := range chars {
		if c < utf8.RuneSelf {
			s.bits[c>>6] |= 1 << (c & 63)
		}
	}
	return s
}

// Contains reports whether c is percent-encoded under s.
func (s EncodeSet) Contains(c byte) bool {
	return c >= utf8.RuneSelf || s.bits[c>>6]&(1<<(c&63)) != 0
}

// Includes reports whether every byte encoded by other is also encoded by s.
func (s EncodeSet) Includes(other EncodeSet) bool {
	return s.bits[0]&other.bits[0] == other.bits[0] && s.bits[1]&other.bits[1] == other.bits[1]
}

// Component encode sets. Each set encodes everything its parent encodes:
// Userinfo > Path > Query > Fragment > Control.
var (
	// ControlSet encodes the C0 control bytes and DEL.
	ControlSet = controlSet()
	// FragmentSet is used for the fragment.
	FragmentSet = ControlSet.Add(' ', '"', '<', '>', '`')
	// QuerySet is used for the query of non-special schemes.
	QuerySet = FragmentSet.Add('#')
	// SpecialQuerySet is used for the query of special schemes.
	SpecialQuerySet = QuerySet.Add('\'')
	// PathSet is used for path segments and opaque paths.
	PathSet = QuerySet.Add('?', '{', '}')
	// UserinfoSet is used for the username and password.
	UserinfoSet = PathSet.Add('/', ':', ';', '=', '@', '[', '^', '|')
)

func controlSet() EncodeSet {
	var s EncodeSet
	for c := byte(0); c < 0x20; c++ {
		s = s.Add(c)
	}
	return s.Add(0x7f)
}

// AppendEncoded appends s to dst, percent-encoding every byte contained in set
// as '%' followed by two uppercase hex digits.
func AppendEncoded(dst []byte, s string, set EncodeSet) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if set.Contains(c) {
			dst = append(dst, '%', upperHex[c>>4], upperHex[c&15])
			continue
		}
		dst = append(dst, c)
	}
	return dst
}

// Encode returns s percent-encoded under set.
func Encode(s string, set EncodeSet) string {
	for i := 0; i < len(s); i++ {
		if set.Contains(s[i]) {
			return string(AppendEncoded(make([]byte, 0, len(s)+8), s, set))
		}
	}
	return s
}

// Decode reverses percent-encoding. A '%' not followed by two hex digits is
// kept as is. The decoded bytes must be valid UTF-8.
func Decode(s string) (string, error) {
	b := unescape(s)
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q does not decode to UTF-8", ErrInvalidEncoding, s)
	}
	return string(b), nil
}

// decodeLossy decodes s, replacing invalid UTF-8 with U+FFFD.
func decodeLossy(s string) string {
	return strings.ToValidUTF8(string(unescape(s)), "\uFFFD")
}

func unescape(s string) []byte {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		b = append(b, c)
	}
	return b
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
