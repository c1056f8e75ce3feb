// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package urlparse

import (
	"fmt"
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Authority holds decoded credentials.
type Authority struct {
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
}

// Credentials decodes the username and password.
func (u *URL) Credentials() (Authority, error) {
	user, err := Decode(u.Username())
	if err != nil {
		return Authority{}, err
	}
	encoded, _ := u.Password()
	password, err := Decode(encoded)
	if err != nil {
		return Authority{}, err
	}
	return Authority{User: user, Password: password}, nil
}

// HostKind classifies a hostname.
type HostKind int

const (
	HostDomain HostKind = iota
	HostIPv4
	HostIPv6
)

func (k HostKind) String() string {
	switch k {
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	default:
		return "domain"
	}
}

// Host is a classified hostname. Suffix and Registrable are set for domain
// names only; Registrable is empty when the name is itself a public suffix.
type Host struct {
	Kind        HostKind `json:"-"`
	Name        string   `json:"name"`
	Port        uint16   `json:"port,omitempty"`
	HasPort     bool     `json:"-"`
	Suffix      string   `json:"suffix,omitempty"`
	Registrable string   `json:"registrable,omitempty"`
	ICANN       bool     `json:"icann,omitempty"`
}

// HostInfo classifies the hostname. The host text itself is not rewritten;
// IPv6 literals are reported without their brackets.
func (u *URL) HostInfo() (Host, error) {
	h := Host{Name: u.Hostname()}
	h.Port, h.HasPort = u.ExplicitPort()
	if h.Name == "" {
		return h, fmt.Errorf("%w: empty hostname", ErrHostMissing)
	}

	if strings.HasPrefix(h.Name, "[") {
		literal := strings.TrimSuffix(h.Name[1:], "]")
		addr, err := netip.ParseAddr(literal)
		if err != nil || !addr.Is6() || !strings.HasSuffix(h.Name, "]") {
			return h, fmt.Errorf("%w: bad IPv6 literal %q", ErrInvalidHost, h.Name)
		}
		h.Kind = HostIPv6
		h.Name = literal
		return h, nil
	}

	if addr, err := netip.ParseAddr(h.Name); err == nil && addr.Is4() {
		h.Kind = HostIPv4
		return h, nil
	}

	domain := strings.ToLower(strings.TrimSuffix(h.Name, "."))
	h.Kind = HostDomain
	h.Suffix, h.ICANN = publicsuffix.PublicSuffix(domain)
	if registrable, err := publicsuffix.EffectiveTLDPlusOne(domain); err == nil {
		h.Registrable = registrable
	}
	return h, nil
}

// Pair is one key/value pair of a query.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Query is the ordered list of pairs in a query string.
type Query []Pair

// ParseQuery splits raw on '&' and each piece on its first '='. Keys and
// values are percent-decoded with '+' read as a space. Empty pieces are
// skipped.
func ParseQuery(raw string) (Query, error) {
	var q Query
	for raw != "" {
		var piece string
		piece, raw, _ = strings.Cut(raw, "&")
		if piece == "" {
			continue
		}
		key, value, _ := strings.Cut(piece, "=")
		k, err := Decode(strings.ReplaceAll(key, "+", " "))
		if err != nil {
			return nil, err
		}
		v, err := Decode(strings.ReplaceAll(value, "+", " "))
		if err != nil {
			return nil, err
		}
		q = append(q, Pair{Key: k, Value: v})
	}
	return q, nil
}

// QueryPairs parses the URL's query.
func (u *URL) QueryPairs() (Query, error) {
	return ParseQuery(u.Query())
}

// Get returns the first value for key.
func (q Query) Get(key string) string {
	for _, p := range q {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// Values returns every value for key in order.
func (q Query) Values(key string) []string {
	var values []string
	for _, p := range q {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Has reports whether key occurs.
func (q Query) Has(key string) bool {
	for _, p := range q {
		if p.Key == key {
			return true
		}
	}
	return false
}

// Len returns the number of pairs.
func (q Query) Len() int {
	return len(q)
}

var formSet = SpecialQuerySet.Add('&', '=', '+', '%')

// Encode serializes q in order. Every pair is written as key=value.
func (q Query) Encode() string {
	var b []byte
	for i, p := range q {
		if i > 0 {
			b = append(b, '&')
		}
		b = AppendEncoded(b, p.Key, formSet)
		b = append(b, '=')
		b = AppendEncoded(b, p.Value, formSet)
	}
	return string(b)
}

// Components is a flat view of every component, for reporting.
type Components struct {
	URL      string  `json:"url"`
	Scheme   string  `json:"scheme"`
	Username string  `json:"username,omitempty"`
	Password string  `json:"password,omitempty"`
	Hostname string  `json:"hostname"`
	Port     uint16  `json:"port,omitempty"`
	Path     string  `json:"path"`
	Query    string  `json:"query,omitempty"`
	Fragment string  `json:"fragment,omitempty"`
	Offsets  Offsets `json:"offsets"`
}

// Components returns the encoded components. Port is the effective port.
func (u *URL) Components() Components {
	password, _ := u.Password()
	port, _ := u.Port()
	return Components{
		URL:      u.serialized,
		Scheme:   u.Scheme(),
		Username: u.Username(),
		Password: password,
		Hostname: u.Hostname(),
		Port:     port,
		Path:     u.Path(),
		Query:    u.Query(),
		Fragment: u.Fragment(),
		Offsets:  u.Offsets(),
	}
}
