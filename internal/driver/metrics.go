package driver

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// Process-wide counters, exposed through WriteMetrics.
var functionsProcessed = metrics.NewCounter(`stackless_functions_processed_total`)

func passRuns(pass string) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf(`stackless_pass_runs_total{pass=%q}`, pass))
}

func passDuration(pass string) *metrics.Summary {
	return metrics.GetOrCreateSummary(fmt.Sprintf(`stackless_pass_duration_seconds{pass=%q}`, pass))
}

// WriteMetrics writes the pipeline's counters and summaries to w in
// Prometheus text format, process metrics included. The CLI prints this
// after a run; a long-lived embedder can serve it over HTTP instead.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, true)
}
