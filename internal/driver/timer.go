package driver

import (
	"fmt"
	"strings"
	"time"
)

// PassTimer accumulates wall time per pass while one worker walks a
// function's pipeline. Passes are keyed by name and keep first-run order.
// Not safe for concurrent use; the driver hands each goroutine its own.
type PassTimer struct {
	order []string
	spans map[string]*passSpan
}

type passSpan struct {
	runs  int
	total time.Duration
}

// NewPassTimer builds an empty timer.
func NewPassTimer() *PassTimer {
	return &PassTimer{spans: make(map[string]*passSpan)}
}

// Track starts timing one run of pass and returns the function that closes
// the measurement.
func (t *PassTimer) Track(pass string) func() {
	span, ok := t.spans[pass]
	if !ok {
		span = &passSpan{}
		t.spans[pass] = span
		t.order = append(t.order, pass)
	}
	start := time.Now()
	return func() {
		span.runs++
		span.total += time.Since(start)
	}
}

// PassTiming is the serializable aggregate for one pass.
type PassTiming struct {
	Pass    string  `json:"pass"`
	Runs    int     `json:"runs"`
	TotalMS float64 `json:"total_ms"`
}

// TimingReport holds all tracked passes in first-run order.
type TimingReport struct {
	TotalMS float64      `json:"total_ms"`
	Passes  []PassTiming `json:"passes"`
}

// Report aggregates the tracked passes.
func (t *PassTimer) Report() TimingReport {
	var rep TimingReport
	var total time.Duration
	for _, pass := range t.order {
		span := t.spans[pass]
		total += span.total
		rep.Passes = append(rep.Passes, PassTiming{
			Pass:    pass,
			Runs:    span.runs,
			TotalMS: millis(span.total),
		})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report as indented text for log output.
func (t *PassTimer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("pass timings:\n")
	for _, p := range rep.Passes {
		fmt.Fprintf(&b, "  %-16s %4d runs %9.2f ms\n", p.Pass, p.Runs, p.TotalMS)
	}
	fmt.Fprintf(&b, "  %-16s %19.2f ms\n", "total", rep.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
