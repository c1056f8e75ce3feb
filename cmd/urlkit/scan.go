package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/urlkit/cache"
	"github.com/jongio/urlkit/cliout"
	"github.com/jongio/urlkit/config"
	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/metrics"
	"github.com/jongio/urlkit/progress"
	"github.com/jongio/urlkit/scan"
	"github.com/jongio/urlkit/security"
)

const stdinInput = "-"

func (a *app) newScanCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Parse a list of URLs concurrently and summarize the results",
		Long: `scan reads one URL per line from a file or stdin. Blank lines and lines
starting with '#' are skipped. Reports for files can be cached by content
hash, and Prometheus metrics can be served while the scan runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, input)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", stdinInput, "File with one URL per line, or - for stdin")
	config.BindScanFlags(cmd.Flags())
	return cmd
}

func (a *app) runScan(cmd *cobra.Command, input string) error {
	log := logutil.NewLogger("cli").WithOperation("scan")
	ctx := cmd.Context()

	if addr := a.cfg.Scan.MetricsAddr; addr != "" {
		stop, err := serveMetrics(addr, log)
		if err != nil {
			return err
		}
		defer stop()
	}

	var (
		store *cache.Store[scan.Report]
		key   string
	)
	if a.cfg.Scan.CacheDir != "" && input != stdinInput {
		var err error
		if store, key, err = a.openCache(input); err != nil {
			return err
		}
		report, ok, err := store.Get(key)
		if err != nil {
			log.Warn("cache read failed", "error", err)
		}
		if ok {
			log.Debug("using cached report", "key", key)
			return printReport(&report, true)
		}
	}

	inputs, err := readInputs(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	opts := a.cfg.ScanOptions()
	var bar *progress.Bar
	if errOut := cmd.ErrOrStderr(); !cliout.IsJSON() && progress.Enabled(errOut) {
		bar = progress.New(errOut, "Scanning", len(inputs))
		opts.Progress = func(done, _ int) { bar.Set(done) }
	}

	report, err := scan.New(opts).Scan(ctx, inputs)
	if bar != nil {
		bar.Finish(err == nil)
	}
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.Set(key, *report); err != nil {
			log.Warn("cache write failed", "error", err)
		}
	}
	return printReport(report, false)
}

func (a *app) openCache(input string) (*cache.Store[scan.Report], string, error) {
	store, err := cache.New[scan.Report](cache.Options{
		Dir:     a.cfg.Scan.CacheDir,
		TTL:     a.cfg.Scan.CacheTTL,
		Version: a.info.Version,
	})
	if err != nil {
		return nil, "", err
	}
	hash, err := cache.HashFile(input)
	if err != nil {
		return nil, "", err
	}
	return store, cache.Key(hash, a.cfg.Fingerprint()), nil
}

func readInputs(stdin io.Reader, input string) ([]string, error) {
	if input == stdinInput {
		return scan.ReadInputs(stdin)
	}
	if err := security.ValidatePath(input); err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	f, err := os.Open(input) // #nosec G304 -- path validated above
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return scan.ReadInputs(f)
}

// serveMetrics starts the Prometheus endpoint and returns a function that
// shuts it down.
func serveMetrics(addr string, log *logutil.ComponentLogger) (func(), error) {
	if err := security.ValidateListenAddr(addr); err != nil {
		return nil, err
	}
	if !security.IsLoopbackAddr(addr) {
		log.Warn("metrics endpoint is reachable from other hosts", "addr", addr)
	}

	srv := metrics.CreateMetricsServer(addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", "error", err)
		}
	}()
	log.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown failed", "error", err)
		}
	}, nil
}

func printReport(report *scan.Report, cached bool) error {
	return cliout.Print(report, func() {
		if cached {
			cliout.Info("Using %s report", cliout.Status("cached"))
		}
		if report.Total == 0 {
			cliout.Warning("No URLs to scan")
			return
		}

		rows := make([]cliout.TableRow, 0, len(report.Results))
		for _, r := range report.Results {
			row := cliout.TableRow{"#": strconv.Itoa(r.Index + 1), "Input": r.Input}
			switch {
			case !r.OK():
				row["Result"], row["Status"] = r.Kind, cliout.Status("invalid")
			case r.Truncated:
				row["Result"], row["Status"] = r.URL, cliout.Status("truncated")
			default:
				row["Result"], row["Status"] = r.URL, cliout.Status("valid")
			}
			rows = append(rows, row)
		}
		cliout.Table([]string{"#", "Input", "Result", "Status"}, rows)
		cliout.Newline()

		cliout.Success("%s of %s URLs valid", cliout.Count(report.Valid), cliout.Count(report.Total))
		if report.Truncated > 0 {
			cliout.Warning("%s truncated in lenient mode", cliout.Count(report.Truncated))
		}
		if report.Invalid > 0 {
			cliout.Error("%s invalid", cliout.Count(report.Invalid))
		}
		for _, scheme := range slices.Sorted(maps.Keys(report.ByScheme)) {
			cliout.Label(scheme, strconv.Itoa(report.ByScheme[scheme]))
		}
		for _, kind := range slices.Sorted(maps.Keys(report.ByError)) {
			cliout.Label(kind, strconv.Itoa(report.ByError[kind]))
		}
		cliout.Plain("   %s", cliout.Muted("took %s", report.Duration.Round(time.Microsecond)))
	})
}
