// Package mcptool exposes the URL parser as Model Context Protocol tools.
//
// The server registers four tools: parse_url, normalize_url, decode_url and
// validate_url. Results are returned as indented JSON text. Parse failures are
// tool errors prefixed with the error kind, for example
// "host_missing: host missing at offset 7".
//
//	s := mcptool.NewServer(info, mcptool.Options{RateLimit: 10, Burst: 20})
//	err := mcptool.Serve(ctx, s, os.Stdin, os.Stdout)
//
// A single token bucket covers all tools on a server.
package mcptool
