package mcptool

import (
	"context"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/urlparse"
	"github.com/jongio/urlkit/urlutil"
	"github.com/jongio/urlkit/version"
)

// Tool names exposed by the server.
const (
	ToolParse     = "parse_url"
	ToolNormalize = "normalize_url"
	ToolDecode    = "decode_url"
	ToolValidate  = "validate_url"
)

// Options configures the tool server.
type Options struct {
	// MaxLength bounds accepted input length; zero uses urlutil.MaxURLLength.
	MaxLength int
	// RateLimit is tool calls per second across all tools. Zero disables
	// limiting.
	RateLimit float64
	// Burst is the number of calls allowed at once.
	Burst int
}

// ParseResult is the parse_url payload.
type ParseResult struct {
	urlparse.Components
	Input     string `json:"input"`
	Mode      string `json:"mode"`
	Display   string `json:"display"`
	Truncated bool   `json:"truncated"`
}

// NormalizeResult is the normalize_url payload.
type NormalizeResult struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Changed    bool   `json:"changed"`
}

// DecodeResult is the decode_url payload.
type DecodeResult struct {
	Input   string `json:"input"`
	Decoded string `json:"decoded"`
}

// ValidateResult is the validate_url payload.
type ValidateResult struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	HTTPSOnly bool   `json:"httpsOnly"`
	Reason    string `json:"reason,omitempty"`
}

type handlers struct {
	opts    Options
	limiter *RateLimiter
	log     *logutil.ComponentLogger
}

// NewServer creates an MCP server exposing the URL tools.
func NewServer(info *version.Info, opts Options) *server.MCPServer {
	s := server.NewMCPServer(info.Name, info.Version, server.WithToolCapabilities(false))
	s.AddTools(Tools(opts)...)
	return s
}

// Tools returns the URL tools with their handlers bound to opts.
func Tools(opts Options) []server.ServerTool {
	if opts.MaxLength <= 0 {
		opts.MaxLength = urlutil.MaxURLLength
	}
	h := &handlers{opts: opts, log: logutil.NewLogger("mcp")}
	if opts.RateLimit > 0 {
		h.limiter = NewRateLimiter(max(opts.Burst, 1), opts.RateLimit)
	}

	return []server.ServerTool{
		{
			Tool: mcp.NewTool(ToolParse,
				mcp.WithDescription("Parse a URL into its normalized form and component offsets"),
				mcp.WithString("url", mcp.Required(), mcp.Description("The URL to parse")),
				mcp.WithBoolean("lenient", mcp.Description("Recover from a missing '//' or an invalid port instead of failing")),
			),
			Handler: h.limited(ToolParse, h.parse),
		},
		{
			Tool: mcp.NewTool(ToolNormalize,
				mcp.WithDescription("Return the canonical serialization of a URL"),
				mcp.WithString("url", mcp.Required(), mcp.Description("The URL to normalize")),
			),
			Handler: h.limited(ToolNormalize, h.normalize),
		},
		{
			Tool: mcp.NewTool(ToolDecode,
				mcp.WithDescription("Percent-decode text, failing on invalid UTF-8"),
				mcp.WithString("text", mcp.Required(), mcp.Description("The percent-encoded text")),
			),
			Handler: h.limited(ToolDecode, h.decode),
		},
		{
			Tool: mcp.NewTool(ToolValidate,
				mcp.WithDescription("Check that a URL is a well-formed http or https URL"),
				mcp.WithString("url", mcp.Required(), mcp.Description("The URL to validate")),
				mcp.WithBoolean("httpsOnly", mcp.Description("Reject http URLs other than localhost")),
			),
			Handler: h.limited(ToolValidate, h.validate),
		},
	}
}

func (h *handlers) limited(name string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if h.limiter != nil {
			if err := h.limiter.CheckRateLimit(name); err != nil {
				h.log.Warn("tool call rejected", "tool", name)
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		h.log.Debug("tool call", "tool", name)
		return next(ctx, request)
	}
}

func requireString(args map[string]any, key string) (string, *mcp.CallToolResult) {
	s, ok := GetStringParam(args, key)
	if !ok {
		return "", mcp.NewToolResultError("missing required string argument: " + key)
	}
	return s, nil
}

// toolError reports a parse failure with its kind so clients can branch on it.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(urlparse.KindName(err) + ": " + err.Error())
}

func (h *handlers) parse(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := GetArgsMap(request)
	input, res := requireString(args, "url")
	if res != nil {
		return res, nil
	}
	mode := urlparse.Strict
	if GetBoolParam(args, "lenient", false) {
		mode = urlparse.Lenient
	}

	u, err := urlparse.ParseWithOptions(input, urlparse.Options{Mode: mode, MaxLength: h.opts.MaxLength})
	if err != nil {
		return toolError(err), nil
	}
	return MarshalToolResult(ParseResult{
		Components: u.Components(),
		Input:      input,
		Mode:       mode.String(),
		Display:    u.Display(),
		Truncated:  u.Truncated(),
	})
}

func (h *handlers) normalize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, res := requireString(GetArgsMap(request), "url")
	if res != nil {
		return res, nil
	}
	u, err := urlparse.ParseWithOptions(input, urlparse.Options{MaxLength: h.opts.MaxLength})
	if err != nil {
		return toolError(err), nil
	}
	return MarshalToolResult(NormalizeResult{Input: input, Normalized: u.String(), Changed: u.String() != input})
}

func (h *handlers) decode(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, res := requireString(GetArgsMap(request), "text")
	if res != nil {
		return res, nil
	}
	decoded, err := urlparse.Decode(input)
	if err != nil {
		return toolError(err), nil
	}
	return MarshalToolResult(DecodeResult{Input: input, Decoded: decoded})
}

func (h *handlers) validate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := GetArgsMap(request)
	input, res := requireString(args, "url")
	if res != nil {
		return res, nil
	}
	httpsOnly := GetBoolParam(args, "httpsOnly", false)

	check := urlutil.Validate
	if httpsOnly {
		check = urlutil.ValidateHTTPSOnly
	}
	result := ValidateResult{Input: input, Valid: true, HTTPSOnly: httpsOnly}
	if err := check(input); err != nil {
		result.Valid = false
		result.Reason = err.Error()
	}
	return MarshalToolResult(result)
}

// Serve runs s over the given streams until ctx is cancelled or in closes.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	log := logutil.NewLogger("mcp").WithOperation("serve")
	log.Info("mcp server listening on stdio")
	err := server.NewStdioServer(s).Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
