// Package urlutil provides URL validation and normalization helpers built on urlparse.
//
// This package makes it easy for callers (the urlkit CLI, the MCP tools and
// the browser launcher) to validate HTTP/HTTPS URLs with a consistent set of
// rules. It parses with urlparse in strict mode and adds protocol
// restrictions, host checks and length limits on top.
//
// # Usage
//
// Use Validate for HTTP/HTTPS URL validation:
//
//	import "github.com/jongio/urlkit/urlutil"
//
//	if err := urlutil.Validate(customURL); err != nil {
//		return fmt.Errorf("invalid custom URL: %w", err)
//	}
//
// Use ValidateHTTPSOnly for production environments requiring HTTPS:
//
//	// Enforce HTTPS-only (allows localhost HTTP for development)
//	if err := urlutil.ValidateHTTPSOnly(apiEndpoint); err != nil {
//		return fmt.Errorf("API endpoint must use HTTPS: %w", err)
//	}
//
// Use Normalize to get the canonical serialized form of any supported URL:
//
//	normalized, err := urlutil.Normalize("HTTP://Example.com//docs")
//	// normalized == "http://Example.com/docs"
//
// Use NormalizeScheme to ensure URLs have proper protocols:
//
//	normalized := urlutil.NormalizeScheme("example.com", "https")
//	// Returns: "https://example.com"
//
// Use Origin and SameOrigin to compare where two URLs point:
//
//	same, err := urlutil.SameOrigin("https://example.com/a", "https://example.com:443/b")
//	// same == true
//
// # Validation Rules
//
// The validation functions enforce the following rules:
//   - URL must not be empty or only whitespace
//   - URL must use http:// or https:// protocol (rejects ftp://, file://, javascript://, etc.)
//   - URL must have a host (rejects "http://", "https://")
//   - A domain host must not contain spaces or URL delimiters
//   - URL must not exceed 2048 characters (RFC 2616 practical limit)
//   - URL must parse with urlparse.Parse in strict mode
//
// # Security Considerations
//
//   - Protocol validation prevents javascript:, file:, and data: URL injection
//   - Host validation prevents malformed URLs that could bypass security checks
//   - Length limits bound parsing work for untrusted input
//
// For production environments, use ValidateHTTPSOnly to enforce encrypted connections,
// while still allowing localhost HTTP for local development.
package urlutil
