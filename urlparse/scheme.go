// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package urlparse

// SchemeKind identifies a scheme with its own grammar rules.
type SchemeKind int

const (
	// SchemeOther is any syntactically valid scheme without a dedicated grammar.
	SchemeOther SchemeKind = iota
	SchemeHTTP
	SchemeHTTPS
	SchemeFile
	SchemeFTP
	SchemeWS
	SchemeWSS
)

func (k SchemeKind) String() string {
	switch k {
	case SchemeHTTP:
		return "http"
	case SchemeHTTPS:
		return "https"
	case SchemeFile:
		return "file"
	case SchemeFTP:
		return "ftp"
	case SchemeWS:
		return "ws"
	case SchemeWSS:
		return "wss"
	default:
		return "other"
	}
}

type schemeRules struct {
	special     bool
	supported   bool
	defaultPort uint16
}

var schemeTable = map[SchemeKind]schemeRules{
	SchemeHTTP:  {special: true, supported: true, defaultPort: 80},
	SchemeHTTPS: {special: true, supported: true, defaultPort: 443},
	SchemeWS:    {special: true, supported: true, defaultPort: 80},
	SchemeWSS:   {special: true, supported: true, defaultPort: 443},
	SchemeFTP:   {special: true, supported: true, defaultPort: 21},
	SchemeFile:  {special: true},
	SchemeOther: {supported: true},
}

var schemeKinds = map[string]SchemeKind{
	"http":  SchemeHTTP,
	"https": SchemeHTTPS,
	"file":  SchemeFile,
	"ftp":   SchemeFTP,
	"ws":    SchemeWS,
	"wss":   SchemeWSS,
}

// Scheme is the tagged form of a URL scheme.
type Scheme struct {
	Kind SchemeKind
	Name string
}

// LookupScheme returns the Scheme for a lower-cased scheme name.
func LookupScheme(name string) Scheme {
	return Scheme{Kind: schemeKinds[name], Name: name}
}

// Special reports whether the scheme requires a "//"-prefixed authority.
func (s Scheme) Special() bool {
	return schemeTable[s.Kind].special
}

// Supported reports whether the parser implements the scheme's grammar.
func (s Scheme) Supported() bool {
	return schemeTable[s.Kind].supported
}

// DefaultPort returns the scheme's default port, if it has one.
func (s Scheme) DefaultPort() (uint16, bool) {
	port := schemeTable[s.Kind].defaultPort
	return port, port != 0
}

func (s Scheme) String() string {
	return s.Name
}

func (s Scheme) querySet() EncodeSet {
	if s.Special() {
		return SpecialQuerySet
	}
	return QuerySet
}
