package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/cliout"
	"github.com/jongio/urlkit/urlparse"
)

// parseOutput is one parse command result.
type parseOutput struct {
	Input      string               `json:"input"`
	Components *urlparse.Components `json:"components,omitempty"`
	Display    string               `json:"display,omitempty"`
	Truncated  bool                 `json:"truncated,omitempty"`
	Error      string               `json:"error,omitempty"`
	Kind       string               `json:"kind,omitempty"`
}

// textOutput is one normalize or decode command result.
type textOutput struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

func (a *app) newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>...",
		Short: "Parse URLs and show their components",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]parseOutput, 0, len(args))
			failed := 0
			for _, input := range args {
				out := parseOutput{Input: input}
				u, err := urlparse.ParseWithOptions(input, a.cfg.ParseOptions())
				if err != nil {
					out.Error, out.Kind = err.Error(), urlparse.KindName(err)
					failed++
				} else {
					c := u.Components()
					out.Components, out.Display, out.Truncated = &c, u.Display(), u.Truncated()
				}
				results = append(results, out)
			}

			if err := cliout.Print(results, func() { printParsed(results) }); err != nil {
				return err
			}
			if failed > 0 {
				return errInputsFailed
			}
			return nil
		},
	}
}

func printParsed(results []parseOutput) {
	for i, r := range results {
		if i > 0 {
			cliout.Newline()
		}
		if r.Error != "" {
			cliout.Error("%s: %s", r.Input, r.Error)
			continue
		}
		c := r.Components
		if r.Truncated {
			cliout.Warning("%s %s", cliout.URL(c.URL), cliout.Status("truncated"))
		} else {
			cliout.Success("%s", cliout.URL(c.URL))
		}
		cliout.Label("Scheme", c.Scheme)
		if c.Username != "" {
			cliout.Label("Username", c.Username)
		}
		if c.Password != "" {
			cliout.Label("Password", "****")
		}
		if c.Hostname != "" {
			cliout.Label("Host", c.Hostname)
		}
		if c.Port != 0 {
			cliout.Label("Port", strconv.Itoa(int(c.Port)))
		}
		cliout.Label("Path", c.Path)
		if c.Query != "" {
			cliout.Label("Query", c.Query)
		}
		if c.Fragment != "" {
			cliout.Label("Fragment", c.Fragment)
		}
		if r.Display != c.URL {
			cliout.Label("Display", r.Display)
		}
		o := c.Offsets
		cliout.Label("Offsets", cliout.Muted("scheme=%d userinfo=%d host=%d path=%d query=%d len=%d",
			o.SchemeEnd, o.UserinfoEnd, o.HostEnd, o.PathEnd, o.QueryEnd, o.Len))
	}
}

func (a *app) newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <url>...",
		Short: "Print the normalized serialization of URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args, func(input string) (string, error) {
				u, err := urlparse.ParseWithOptions(input, a.cfg.ParseOptions())
				if err != nil {
					return "", err
				}
				return u.String(), nil
			})
		},
	}
}

func (a *app) newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <text>...",
		Short: "Percent-decode text, rejecting invalid UTF-8",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transform(args, urlparse.Decode)
		},
	}
}

// transform applies fn to every input and prints one line per result.
func (a *app) transform(inputs []string, fn func(string) (string, error)) error {
	results := make([]textOutput, 0, len(inputs))
	failed := 0
	for _, input := range inputs {
		out := textOutput{Input: input}
		if s, err := fn(input); err != nil {
			out.Error, out.Kind = err.Error(), urlparse.KindName(err)
			failed++
		} else {
			out.Output = s
		}
		results = append(results, out)
	}

	err := cliout.Print(results, func() {
		for _, r := range results {
			if r.Error != "" {
				cliout.Error("%s: %s", r.Input, r.Error)
				continue
			}
			cliout.Plain("%s", r.Output)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if failed > 0 {
		return errInputsFailed
	}
	return nil
}
