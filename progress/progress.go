// Package progress renders a single-line progress bar for long-running
// batch work such as scanning large URL lists.
package progress

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/jongio/urlkit/cliout"
)

// Display constants.
const (
	defaultTermWidth   = 80
	minTermWidthForBar = 70 // Below this width, use compact mode
	refreshInterval    = 100 * time.Millisecond
	maxDescWidth       = 20
	minBarWidth        = 10
	maxBarWidth        = 30
	// "icon desc [] 100% done/total 999.9s" without the bar and counts.
	layoutOverhead = 2 + maxDescWidth + 4 + 5 + 8
)

// Bar tracks completion of a fixed number of items. It is safe for
// concurrent use.
type Bar struct {
	w           io.Writer
	description string
	total       int
	termWidth   int
	color       bool
	now         func() time.Time

	mu         sync.Mutex
	done       int
	start      time.Time
	lastRender time.Time
	finished   bool
}

// Enabled reports whether w is an interactive terminal, which is the only
// place a redrawn progress line makes sense.
func Enabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// New creates a bar writing to w. Nothing is drawn until the first Set.
func New(w io.Writer, description string, total int) *Bar {
	_, noColor := os.LookupEnv(cliout.EnvNoColor)
	return &Bar{
		w:           w,
		description: description,
		total:       total,
		termWidth:   termWidth(w),
		color:       Enabled(w) && !noColor,
		now:         time.Now,
		start:       time.Now(),
	}
}

// termWidth prefers COLUMNS, then the size of w's terminal.
func termWidth(w io.Writer) int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// Set records that done items are complete and redraws at most once per
// refresh interval. The final item always redraws.
func (b *Bar) Set(done int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished || done < b.done {
		return
	}
	b.done = min(done, b.total)
	now := b.now()
	if b.done < b.total && now.Sub(b.lastRender) < refreshInterval {
		return
	}
	b.lastRender = now
	b.draw(b.line(false, false, now))
}

// Finish draws the final state and moves to a new line. Later calls are
// ignored.
func (b *Bar) Finish(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return
	}
	b.finished = true
	b.draw(b.line(true, success, b.now()) + "\n")
}

func (b *Bar) draw(line string) {
	_, _ = fmt.Fprint(b.w, "\r\033[2K"+line)
}

func (b *Bar) paint(code, s string) string {
	if !b.color {
		return s
	}
	return code + s + cliout.Reset
}

func (b *Bar) percent() float64 {
	if b.total == 0 {
		return 100
	}
	return float64(b.done) * 100 / float64(b.total)
}

// line builds the progress line for the current state.
func (b *Bar) line(final, success bool, now time.Time) string {
	icon, color := "›", cliout.Cyan
	if final {
		icon, color = "✓", cliout.Green
		if !success {
			icon, color = "✗", cliout.Red
		}
	}

	pct := b.percent()
	counts := fmt.Sprintf("%d/%d", b.done, b.total)
	elapsed := b.paint(cliout.Dim, fmt.Sprintf("%.1fs", now.Sub(b.start).Seconds()))

	if b.termWidth < minTermWidthForBar {
		return fmt.Sprintf("%s %s %3.0f%% %s %s", b.paint(color, icon), b.description, pct, counts, elapsed)
	}

	width := max(minBarWidth, min(maxBarWidth, b.termWidth-layoutOverhead-len(counts)))
	filled := int(float64(width) * pct / 100)
	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)

	return fmt.Sprintf("%s %-*s [%s] %3.0f%% %s %s",
		b.paint(color, icon), maxDescWidth, truncateString(b.description, maxDescWidth),
		b.paint(color, bar), pct, counts, elapsed)
}

// truncateString truncates s to maxLen runes.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
