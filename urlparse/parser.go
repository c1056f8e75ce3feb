// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package urlparse

import (
	"errors"
	"strconv"
	"strings"
)

// Mode selects how parse failures after the scheme are handled.
type Mode int

const (
	// Strict fails on any grammar violation.
	Strict Mode = iota
	// Lenient accepts a missing or repeated "//" after a special scheme and an
	// empty host, and truncates the result at the host on an invalid port.
	Lenient
)

func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// ParseMode converts "strict" or "lenient" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "", "strict":
		return Strict, true
	case "lenient":
		return Lenient, true
	default:
		return Strict, false
	}
}

// Options configures ParseWithOptions.
type Options struct {
	Mode Mode
	// MaxLength rejects trimmed inputs longer than this many bytes. Zero means
	// no limit.
	MaxLength int
}

// Parse parses input in strict mode.
func Parse(input string) (*URL, error) {
	return ParseWithOptions(input, Options{})
}

// ParseLenient parses input in lenient mode.
func ParseLenient(input string) (*URL, error) {
	return ParseWithOptions(input, Options{Mode: Lenient})
}

// ParseWithOptions trims input and scans it once, returning either a complete
// URL or a *ParseError.
func ParseWithOptions(input string, opts Options) (*URL, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, newError(ErrEmptyInput, 0, "")
	}
	if opts.MaxLength > 0 && len(input) > opts.MaxLength {
		return nil, newError(ErrInputTooLong, opts.MaxLength, "%d bytes exceeds limit of %d", len(input), opts.MaxLength)
	}

	p := &parser{
		input: input,
		mode:  opts.Mode,
		buf:   make([]byte, 0, len(input)+len(input)/4),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	p.url.serialized = string(p.buf)
	u := p.url
	return &u, nil
}

// parser owns the output buffer until parsing succeeds. pos is a cursor into
// input; the offsets in url are lengths of buf.
type parser struct {
	input string
	pos   int
	mode  Mode
	buf   []byte
	url   URL
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) parse() error {
	if err := p.parseScheme(); err != nil {
		return err
	}

	scheme := p.url.scheme
	switch {
	case !scheme.Supported():
		return newError(ErrUnsupportedScheme, 0, "%q", scheme.Name)
	case scheme.Special():
		return p.parseSpecial()
	default:
		return p.parseGeneric()
	}
}

func (p *parser) parseScheme() error {
	end := strings.IndexByte(p.input, ':')
	if end <= 0 {
		return newError(ErrMissingScheme, 0, "")
	}

	for i := 0; i < end; i++ {
		c := p.input[i]
		switch {
		case 'a' <= c && c <= 'z':
			p.buf = append(p.buf, c)
		case 'A' <= c && c <= 'Z':
			p.buf = append(p.buf, c+('a'-'A'))
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
			p.buf = append(p.buf, c)
		default:
			return newError(ErrInvalidSchemeCharacter, i, "%q", c)
		}
	}

	p.url.schemeEnd = len(p.buf)
	p.url.scheme = LookupScheme(string(p.buf))
	p.pos = end + 1
	return nil
}

func (p *parser) parseSpecial() error {
	if strings.HasPrefix(p.rest(), "//") {
		p.pos += 2
	} else if p.mode == Strict {
		return newError(ErrSpecialSchemeMissingFollowingSolidus, p.pos, "%s: must be followed by //", p.url.scheme.Name)
	}
	if p.mode == Lenient {
		for p.pos < len(p.input) && p.input[p.pos] == '/' {
			p.pos++
		}
	}

	p.buf = append(p.buf, "://"...)
	p.url.hasAuthority = true
	return p.parseHierarchical(true)
}

func (p *parser) parseGeneric() error {
	if strings.HasPrefix(p.rest(), "//") {
		p.pos += 2
		p.buf = append(p.buf, "://"...)
		p.url.hasAuthority = true
		return p.parseHierarchical(false)
	}

	p.buf = append(p.buf, ':')
	p.url.userinfoEnd = len(p.buf)
	p.url.hostnameEnd = len(p.buf)
	p.url.hostEnd = len(p.buf)
	p.parseOpaquePath()
	p.parseQuery()
	p.parseFragment()
	return nil
}

func (p *parser) parseHierarchical(hostRequired bool) error {
	p.parseUserinfo()
	if err := p.parseHost(hostRequired); err != nil {
		if p.mode == Lenient && errors.Is(err, ErrInvalidPort) {
			p.truncate()
			return nil
		}
		return err
	}
	p.parsePath()
	p.parseQuery()
	p.parseFragment()
	return nil
}

// truncate drops everything after the hostname.
func (p *parser) truncate() {
	p.buf = p.buf[:p.url.hostnameEnd]
	p.url.hostEnd = len(p.buf)
	p.url.pathEnd = len(p.buf)
	p.url.queryEnd = len(p.buf)
	p.url.port, p.url.hasPort = 0, false
	p.url.truncated = true
	p.pos = len(p.input)
}

// authorityEnd returns the input position of the first '/', '?' or '#' at or
// after pos, or the end of input.
func (p *parser) authorityEnd() int {
	if i := strings.IndexAny(p.rest(), "/?#"); i >= 0 {
		return p.pos + i
	}
	return len(p.input)
}

func (p *parser) parseUserinfo() {
	span := p.input[p.pos:p.authorityEnd()]
	at := strings.LastIndexByte(span, '@')
	if at < 0 {
		p.url.userinfoEnd = len(p.buf)
		return
	}

	username, password, _ := strings.Cut(span[:at], ":")
	if username != "" {
		p.buf = AppendEncoded(p.buf, username, UserinfoSet)
		if password != "" {
			p.buf = append(p.buf, ':')
			p.buf = AppendEncoded(p.buf, password, UserinfoSet)
		}
		p.buf = append(p.buf, '@')
	}
	p.pos += at + 1
	p.url.userinfoEnd = len(p.buf)
}

func (p *parser) parseHost(required bool) error {
	start := p.pos
	end := p.authorityEnd()
	name, port := splitHostPort(p.input[start:end])
	if name == "" && required && p.mode == Strict {
		return newError(ErrHostMissing, start, "")
	}

	p.buf = append(p.buf, name...)
	p.url.hostnameEnd = len(p.buf)
	p.url.hostEnd = len(p.buf)
	p.pos = end

	if port == "" {
		return nil
	}
	n, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return newError(ErrInvalidPort, start+len(name)+1, "%q", port)
	}
	p.buf = append(p.buf, ':')
	p.buf = strconv.AppendUint(p.buf, n, 10)
	p.url.port = uint16(n)
	p.url.hasPort = true
	p.url.hostEnd = len(p.buf)
	return nil
}

// splitHostPort splits host at its first ':' after any leading IPv6
// literal, so a serialized hostname never contains a bare ':'. An empty port
// means there is none.
func splitHostPort(host string) (name, port string) {
	from := 0
	if strings.HasPrefix(host, "[") {
		if i := strings.IndexByte(host, ']'); i >= 0 {
			from = i + 1
		}
	}
	i := strings.IndexByte(host[from:], ':')
	if i < 0 {
		return host, ""
	}
	return host[:from+i], host[from+i+1:]
}

func (p *parser) pathSpan() string {
	rest := p.rest()
	end := strings.IndexAny(rest, "?#")
	if end < 0 {
		end = len(rest)
	}
	p.pos += end
	return rest[:end]
}

// parsePath re-emits the path with empty segments collapsed. A trailing
// slash is kept.
func (p *parser) parsePath() {
	span := p.pathSpan()
	if span == "" {
		p.url.pathEnd = len(p.buf)
		return
	}

	wrote := false
	for rest := span; rest != ""; {
		var segment string
		segment, rest, _ = strings.Cut(rest, "/")
		if segment == "" {
			continue
		}
		p.buf = append(p.buf, '/')
		p.buf = AppendEncoded(p.buf, segment, PathSet)
		wrote = true
	}
	if !wrote || span[len(span)-1] == '/' {
		p.buf = append(p.buf, '/')
	}
	p.url.pathEnd = len(p.buf)
}

func (p *parser) parseOpaquePath() {
	p.buf = AppendEncoded(p.buf, p.pathSpan(), PathSet)
	p.url.pathEnd = len(p.buf)
}

func (p *parser) parseQuery() {
	rest := p.rest()
	if rest == "" || rest[0] != '?' {
		p.url.queryEnd = len(p.buf)
		return
	}

	end := strings.IndexByte(rest, '#')
	if end < 0 {
		end = len(rest)
	}
	p.buf = append(p.buf, '?')
	p.buf = AppendEncoded(p.buf, rest[1:end], p.url.scheme.querySet())
	p.pos += end
	p.url.queryEnd = len(p.buf)
}

func (p *parser) parseFragment() {
	rest := p.rest()
	if rest == "" {
		return
	}
	// rest[0] == '#': path and query stop only there.
	p.buf = append(p.buf, '#')
	p.buf = AppendEncoded(p.buf, rest[1:], FragmentSet)
	p.pos = len(p.input)
}
