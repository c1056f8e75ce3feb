package urlutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jongio/urlkit/urlparse"
)

const (
	// MaxURLLength is the RFC 2616 practical limit for URL length
	MaxURLLength = 2048

	// maxDomainLength is the DNS limit for a fully qualified name.
	maxDomainLength = 253
	// maxLabelLength is the DNS limit for a single label.
	maxLabelLength = 63
)

// forbiddenHostBytes are ASCII bytes that cannot appear in a domain host.
const forbiddenHostBytes = " \t\r\n\"#%/:<>?@[\\]^`{|}"

// Validate performs comprehensive HTTP/HTTPS URL validation using urlparse.
// It validates that the URL:
//   - Is not empty or only whitespace
//   - Does not exceed MaxURLLength (2048 characters)
//   - Parses in strict mode
//   - Uses http:// or https:// protocol
//   - Has a host, and a domain host has no forbidden characters
//
// Returns an error with context if validation fails.
//
// Example:
//
//	if err := urlutil.Validate("https://example.com"); err != nil {
//		return fmt.Errorf("invalid URL: %w", err)
//	}
func Validate(rawURL string) error {
	_, err := parseHTTP(rawURL)
	return err
}

func parseHTTP(rawURL string) (*urlparse.URL, error) {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}

	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	// Check the scheme before parsing so ftp:, file: and javascript: get a
	// protocol error rather than a grammar error.
	scheme, _, found := strings.Cut(rawURL, ":")
	scheme = strings.ToLower(scheme)
	if !found || strings.ContainsAny(scheme, "/?#") {
		return nil, fmt.Errorf("url must use http:// or https://")
	}
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("url must use http:// or https://, got: %s", scheme)
	}

	parsed, err := urlparse.Parse(rawURL)
	if err != nil {
		if errors.Is(err, urlparse.ErrHostMissing) {
			return nil, fmt.Errorf("url missing host/domain")
		}
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	host, err := parsed.HostInfo()
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}
	if host.Kind == urlparse.HostDomain && strings.ContainsAny(host.Name, forbiddenHostBytes) {
		return nil, fmt.Errorf("invalid URL format: host %q contains a forbidden character", host.Name)
	}

	return parsed, nil
}

// ValidateHTTPSOnly enforces HTTPS-only URLs for production use.
// It allows HTTP for localhost (127.0.0.1, ::1, localhost) for local development,
// but rejects all other HTTP URLs.
//
// Example:
//
//	if err := urlutil.ValidateHTTPSOnly(apiEndpoint); err != nil {
//		return fmt.Errorf("production endpoint must use HTTPS: %w", err)
//	}
func ValidateHTTPSOnly(rawURL string) error {
	parsed, err := parseHTTP(rawURL)
	if err != nil {
		return err
	}

	if parsed.Scheme() == "https" {
		return nil
	}

	if isLocalhost(parsed.Hostname()) {
		return nil
	}

	return fmt.Errorf("url must use https:// (http:// only allowed for localhost)")
}

// Parse validates rawURL with Validate and returns the parsed URL.
//
// Example:
//
//	parsed, err := urlutil.Parse(userInput)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("Host: %s\n", parsed.Host())
func Parse(rawURL string) (*urlparse.URL, error) {
	return parseHTTP(rawURL)
}

// Normalize parses any supported URL in strict mode and returns its
// serialized form.
//
// Example:
//
//	normalized, err := urlutil.Normalize("HTTP://Example.com//a b")
//	// Returns: "http://Example.com/a%20b"
func Normalize(rawURL string) (string, error) {
	parsed, err := urlparse.ParseWithOptions(rawURL, urlparse.Options{MaxLength: MaxURLLength})
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// NormalizeScheme ensures URL has http:// or https:// prefix.
// If the URL already has a valid scheme (http:// or https://), it is returned unchanged.
// If the URL has no scheme or a different scheme, the defaultScheme is prepended.
//
// The defaultScheme should be either "http" or "https" (without "://").
//
// Example:
//
//	normalized := urlutil.NormalizeScheme("example.com", "https")
//	// Returns: "https://example.com"
func NormalizeScheme(rawURL, defaultScheme string) string {
	rawURL = strings.TrimSpace(rawURL)

	parsed, err := urlparse.Parse(rawURL)
	if err == nil && (parsed.Scheme() == "http" || parsed.Scheme() == "https") {
		return rawURL
	}

	return defaultScheme + "://" + rawURL
}

// Origin returns scheme://host[:port] for a URL with a host. The port is
// omitted when it equals the scheme default.
func Origin(u *urlparse.URL) string {
	origin := u.Scheme() + "://" + u.Hostname()
	port, explicit := u.ExplicitPort()
	if !explicit {
		return origin
	}
	if def, ok := u.SchemeInfo().DefaultPort(); ok && def == port {
		return origin
	}
	return fmt.Sprintf("%s:%d", origin, port)
}

// SameOrigin reports whether two URLs share scheme, hostname and effective
// port. Hostnames compare case-insensitively.
func SameOrigin(a, b string) (bool, error) {
	ua, err := urlparse.Parse(a)
	if err != nil {
		return false, fmt.Errorf("invalid URL %q: %w", a, err)
	}
	ub, err := urlparse.Parse(b)
	if err != nil {
		return false, fmt.Errorf("invalid URL %q: %w", b, err)
	}
	return strings.EqualFold(Origin(ua), Origin(ub)), nil
}

// ValidateDomain validates a bare domain name such as "api.example.com".
// It rejects protocols, ports, empty or malformed labels, and names without
// a dot other than "localhost".
func ValidateDomain(domain string) error {
	domain = strings.TrimSpace(domain)

	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}
	if strings.Contains(domain, "://") {
		return fmt.Errorf("domain should not include protocol")
	}
	if len(domain) > maxDomainLength {
		return fmt.Errorf("domain exceeds maximum length of %d characters", maxDomainLength)
	}
	if i := strings.LastIndexByte(domain, ':'); i >= 0 && isDigits(domain[i+1:]) {
		return fmt.Errorf("domain should not include port")
	}
	if strings.EqualFold(domain, "localhost") {
		return nil
	}
	if !strings.Contains(domain, ".") {
		return fmt.Errorf("domain must have at least one dot")
	}

	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return fmt.Errorf("domain has empty label")
		}
		if len(label) > maxLabelLength {
			return fmt.Errorf("domain label exceeds %d characters", maxLabelLength)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("domain label cannot start or end with hyphen")
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-') {
				return fmt.Errorf("domain label contains invalid character %q", c)
			}
		}
	}

	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isLocalhost checks if the hostname is a localhost address
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)

	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		hostname == "[::1]"
}
