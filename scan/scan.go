package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jongio/urlkit/logutil"
	"github.com/jongio/urlkit/metrics"
	"github.com/jongio/urlkit/urlparse"
)

const (
	// DefaultWorkers is used when Options.Workers is not positive.
	DefaultWorkers = 4

	// maxLineLength bounds a single line read by ReadInputs.
	maxLineLength = 1 << 20
)

// ErrTooManyFailures is returned when the failure breaker opens mid-scan.
var ErrTooManyFailures = errors.New("too many consecutive parse failures")

// Options configures a Scanner.
type Options struct {
	// Workers bounds the number of concurrent parses.
	Workers int
	// RateLimit is the maximum number of parses per second. Zero disables throttling.
	RateLimit float64
	// Burst is the token bucket size. Defaults to twice the rate, at least 1.
	Burst int
	// FailureThreshold is the number of consecutive failures that aborts
	// the scan. Zero disables the breaker.
	FailureThreshold int
	// Parse is passed to urlparse.ParseWithOptions for every input.
	Parse urlparse.Options
	// Progress, if set, is called after each input with the number parsed so
	// far. It is called from worker goroutines.
	Progress func(done, total int)
}

// Result is the outcome of parsing one input.
type Result struct {
	Index     int               `json:"index"`
	Input     string            `json:"input"`
	URL       string            `json:"url,omitempty"`
	Scheme    string            `json:"scheme,omitempty"`
	Offsets   *urlparse.Offsets `json:"offsets,omitempty"`
	Truncated bool              `json:"truncated,omitempty"`
	Error     string            `json:"error,omitempty"`
	Kind      string            `json:"kind,omitempty"`
}

// OK reports whether the input parsed.
func (r Result) OK() bool {
	return r.Error == ""
}

// Report summarizes a scan.
type Report struct {
	Results   []Result       `json:"results"`
	Total     int            `json:"total"`
	Valid     int            `json:"valid"`
	Invalid   int            `json:"invalid"`
	Truncated int            `json:"truncated"`
	ByScheme  map[string]int `json:"byScheme"`
	ByError   map[string]int `json:"byError"`
	Duration  time.Duration  `json:"durationNs"`
}

// Scanner parses URL batches. A Scanner is safe for concurrent use; each
// Scan call gets its own limiter and breaker.
type Scanner struct {
	opts Options
	log  *logutil.ComponentLogger
}

// New creates a Scanner, filling in defaults for unset options.
func New(opts Options) *Scanner {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.RateLimit > 0 && opts.Burst <= 0 {
		opts.Burst = max(1, int(math.Ceil(opts.RateLimit*2)))
	}
	return &Scanner{
		opts: opts,
		log:  logutil.NewLogger("scan"),
	}
}

// Options returns the effective options.
func (s *Scanner) Options() Options {
	return s.opts
}

// Scan parses every input and returns a report with results in input order.
// It returns ctx.Err() if the context is canceled and ErrTooManyFailures if
// the failure breaker opens. No report is returned with an error.
func (s *Scanner) Scan(ctx context.Context, inputs []string) (*Report, error) {
	start := time.Now()
	metrics.RecordScanInputs(len(inputs))

	var limiter *rate.Limiter
	if s.opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.opts.RateLimit), s.opts.Burst)
	}
	breaker := s.newBreaker()

	results := make([]Result, len(inputs))
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, input := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.parseOne(breaker, i, input)
			if err != nil {
				return err
			}
			results[i] = res
			if s.opts.Progress != nil {
				s.opts.Progress(int(done.Add(1)), len(inputs))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Warn("scan aborted", "error", err, "inputs", len(inputs))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := summarize(results)
	report.Duration = time.Since(start)
	s.log.Debug("scan complete", "total", report.Total, "valid", report.Valid, "invalid", report.Invalid, "duration", report.Duration)
	return report, nil
}

// parseOne parses a single input through the breaker. Parse failures are
// reported in the Result; only an open breaker is returned as an error.
func (s *Scanner) parseOne(breaker *gobreaker.CircuitBreaker, index int, input string) (Result, error) {
	res := Result{Index: index, Input: input}

	begin := time.Now()
	var u *urlparse.URL
	var err error
	if breaker != nil {
		var out interface{}
		out, err = breaker.Execute(func() (interface{}, error) {
			return urlparse.ParseWithOptions(input, s.opts.Parse)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return res, fmt.Errorf("%w: breaker opened at input %d", ErrTooManyFailures, index)
		}
		if err == nil {
			u = out.(*urlparse.URL)
		}
	} else {
		u, err = urlparse.ParseWithOptions(input, s.opts.Parse)
	}
	elapsed := time.Since(begin)

	if err != nil {
		res.Error = err.Error()
		res.Kind = urlparse.KindName(err)
		metrics.RecordParse(schemeLabel(input), err, elapsed, len(input), 0)
		s.log.WithInput(index).Debug("parse failed", "kind", res.Kind)
		return res, nil
	}

	offsets := u.Offsets()
	res.URL = u.String()
	res.Scheme = u.Scheme()
	res.Offsets = &offsets
	res.Truncated = u.Truncated()
	metrics.RecordParse(schemeLabel(res.Scheme+":"), nil, elapsed, len(strings.TrimSpace(input)), len(res.URL))
	return res, nil
}

func (s *Scanner) newBreaker() *gobreaker.CircuitBreaker {
	if s.opts.FailureThreshold <= 0 {
		return nil
	}
	threshold := uint32(s.opts.FailureThreshold)
	metrics.RecordBreakerState(gobreaker.StateClosed)
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "scan",
		// A scan is a single pass; an open breaker never recovers within it.
		Timeout: 24 * time.Hour,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerState(to)
			s.log.Info("breaker state changed", "from", from.String(), "to", to.String())
		},
	})
}

// schemeLabel maps an input to a bounded metrics label: the special scheme
// name, "other" for any other scheme, or "" when no scheme can be read.
func schemeLabel(input string) string {
	name, _, found := strings.Cut(strings.TrimSpace(input), ":")
	if !found || name == "" {
		return ""
	}
	return urlparse.LookupScheme(strings.ToLower(name)).Kind.String()
}

func summarize(results []Result) *Report {
	report := &Report{
		Results:  results,
		Total:    len(results),
		ByScheme: make(map[string]int),
		ByError:  make(map[string]int),
	}
	for _, r := range results {
		if !r.OK() {
			report.Invalid++
			report.ByError[r.Kind]++
			continue
		}
		report.Valid++
		report.ByScheme[r.Scheme]++
		if r.Truncated {
			report.Truncated++
		}
	}
	return report
}

// ReadInputs reads one URL per line, skipping blank lines and lines whose
// first non-space character is '#'. Lines are returned trimmed.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	return inputs, nil
}
