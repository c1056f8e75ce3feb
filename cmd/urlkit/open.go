package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/browser"
	"github.com/jongio/urlkit/cliout"
)

func (a *app) newOpenCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Open a validated, normalized http(s) URL in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !browser.IsValid(target) {
				return fmt.Errorf("invalid browser target %q (valid: %s)", target, browser.FormatValidTargets())
			}
			t := browser.Target(target)
			opened, err := browser.Launch(cmd.Context(), browser.LaunchOptions{URL: args[0], Target: t})
			if err != nil {
				return err
			}

			data := map[string]string{"url": opened, "target": string(browser.ResolveTarget(t))}
			return cliout.Print(data, func() {
				if browser.ResolveTarget(t) == browser.TargetNone {
					cliout.Info("Browser disabled, URL: %s", cliout.URL(opened))
					return
				}
				cliout.Success("Opened %s in %s", cliout.URL(opened), browser.GetTargetDisplayName(t))
			})
		},
	}
	cmd.Flags().StringVar(&target, "browser", string(browser.TargetDefault), "Browser target ("+browser.FormatValidTargets()+")")
	return cmd
}
