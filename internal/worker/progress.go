package worker

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 24

// Progress draws a bar for a batch of equally sized render tasks, such as
// flipbook frames or volume slices, and reports pixel throughput.
type Progress struct {
	mu        sync.Mutex
	out       io.Writer
	unit      string
	taskPix   int64
	total     int
	completed int
	failed    int
	start     time.Time
	enabled   bool
}

// NewProgress tracks total tasks named unit (e.g. "frames"), each covering
// taskPixels output pixels. A disabled Progress still counts but never prints.
func NewProgress(total int, unit string, taskPixels int64, enabled bool) *Progress {
	return &Progress{
		out:     os.Stderr,
		unit:    unit,
		taskPix: taskPixels,
		total:   total,
		start:   time.Now(),
		enabled: enabled,
	}
}

// SetOutput redirects the bar, which goes to stderr by default.
func (p *Progress) SetOutput(w io.Writer) {
	p.mu.Lock()
	p.out = w
	p.mu.Unlock()
}

// Update records pool progress and redraws the bar.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	p.completed, p.total, p.failed = completed, total, failed
	p.mu.Unlock()

	if p.enabled {
		p.Print()
	}
}

// Callback adapts Update to Config.OnProgress.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// snapshot is a consistent copy of the counters.
type snapshot struct {
	unit                     string
	taskPix                  int64
	total, completed, failed int
	elapsed                  time.Duration
}

func (p *Progress) snapshot() snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshot{
		unit:      p.unit,
		taskPix:   p.taskPix,
		total:     p.total,
		completed: p.completed,
		failed:    p.failed,
		elapsed:   time.Since(p.start),
	}
}

// megapixels is the output area of the rendered tasks.
func (s snapshot) megapixels() float64 {
	return float64(s.taskPix) * float64(s.completed-s.failed) / 1e6
}

// rate is megapixels per second.
func (s snapshot) rate() float64 {
	if s.elapsed <= 0 {
		return 0
	}
	return s.megapixels() / s.elapsed.Seconds()
}

// Line renders the current bar without a carriage return.
func (p *Progress) Line() string {
	s := p.snapshot()

	filled := 0
	if s.total > 0 {
		filled = min(barWidth, s.completed*barWidth/s.total)
	}
	bar := strings.Repeat("=", filled)
	if filled < barWidth {
		bar += ">" + strings.Repeat(" ", barWidth-filled-1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %d/%d %s", bar, s.completed, s.total, s.unit)
	if s.failed > 0 {
		fmt.Fprintf(&b, ", %d failed", s.failed)
	}
	fmt.Fprintf(&b, " | %.2f Mpx/s", s.rate())
	switch {
	case s.completed >= s.total:
		fmt.Fprintf(&b, " | done in %s", s.elapsed.Round(time.Second))
	case s.completed > 0:
		eta := time.Duration(float64(s.elapsed) * float64(s.total-s.completed) / float64(s.completed))
		fmt.Fprintf(&b, " | ETA %s", eta.Round(time.Second))
	}
	return b.String()
}

// Print redraws the bar in place.
func (p *Progress) Print() {
	line := p.Line()
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r%-72s", line)
}

// Done draws the final bar and ends the line.
func (p *Progress) Done() {
	if !p.enabled {
		return
	}
	p.Print()
	p.mu.Lock()
	fmt.Fprintln(p.out)
	p.mu.Unlock()
}

// LogAttrs returns the batch counters as slog key/value pairs.
func (p *Progress) LogAttrs() []any {
	s := p.snapshot()
	return []any{
		s.unit, s.completed - s.failed,
		"failed", s.failed,
		"megapixels", s.megapixels(),
		"mpx_per_sec", s.rate(),
		"elapsed", s.elapsed,
	}
}
