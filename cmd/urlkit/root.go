package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/cliout"
	"github.com/jongio/urlkit/config"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/version"
)

// errInputsFailed is returned after one or more inputs were reported as
// invalid.
var errInputsFailed = errors.New("one or more inputs failed")

// app carries state shared by every subcommand.
type app struct {
	info       *version.Info
	configPath string
	cfg        *config.Config
}

func newRootCmd(info *version.Info) *cobra.Command {
	a := &app{info: info}

	root := &cobra.Command{
		Use:   "urlkit",
		Short: "Parse, normalize and scan URLs",
		Long: `urlkit parses URLs in a single pass, percent-encodes each component
with its own encode set, and reports the normalized form with the offsets
of every component.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		a.newParseCmd(),
		a.newNormalizeCmd(),
		a.newDecodeCmd(),
		a.newScanCmd(),
		a.newOpenCmd(),
		a.newMCPCmd(),
		a.newConfigCmd(),
		version.NewCommand(info),
	)
	return root
}

// setup resolves configuration with flag > env > file > default precedence
// and configures logging and output before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logutil.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err := cliout.SetFormat(cfg.Output); err != nil {
		return err
	}

	a.cfg = cfg
	logutil.Debug("configuration loaded", "mode", cfg.Mode, "maxLength", cfg.MaxLength, "output", cfg.Output)
	return nil
}
