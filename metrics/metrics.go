// Package metrics instruments the render service with Prometheus
// collectors (SPEC_FULL.md §10.5). The core compiler package never
// imports this package; only render.Service records to it, keeping the
// pure transformation free of I/O per spec.md §5.
//
// Grounded on mattcburns-shoal-provision/internal/provisioner/metrics:
// same package-level mutex-guarded *prometheus.Registry, same Reset for
// test isolation, same label-sanitizing helpers.
package metrics

import (
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu  sync.RWMutex
	reg *prometheus.Registry

	compileDuration *prometheus.HistogramVec
	compileErrors   *prometheus.CounterVec
	counterCommits  *prometheus.CounterVec
)

func init() {
	resetLocked()
}

// Reset clears and reinitializes all collectors. Primarily used by tests
// to ensure clean state between cases.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

// Handler returns an HTTP handler exposing metrics in Prometheus format.
func Handler() http.Handler {
	mu.RLock()
	registry := reg
	mu.RUnlock()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveCompile records one render.Service.Render attempt, labelled by
// outcome ("ok" or "error").
func ObserveCompile(outcome string, duration time.Duration) {
	label := sanitizeLabel(outcome, "unknown")
	mu.RLock()
	defer mu.RUnlock()
	if compileDuration != nil {
		compileDuration.WithLabelValues(label).Observe(durationSeconds(duration))
	}
}

// IncCompileError increments the compile error counter for the given
// zerr.Kind string.
func IncCompileError(kind string) {
	label := sanitizeLabel(kind, "unknown")
	mu.RLock()
	defer mu.RUnlock()
	if compileErrors != nil {
		compileErrors.WithLabelValues(label).Inc()
	}
}

// IncCounterCommit increments the counter-commit total for the given
// counterstore scope key.
func IncCounterCommit(scope string) {
	label := sanitizeLabel(scope, "unknown")
	mu.RLock()
	defer mu.RUnlock()
	if counterCommits != nil {
		counterCommits.WithLabelValues(label).Inc()
	}
}

func resetLocked() {
	registry := prometheus.NewRegistry()

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "zplgrid",
		Name:      "compile_duration_seconds",
		Help:      "Duration of template render attempts by outcome.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"outcome"})

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zplgrid",
		Name:      "compile_errors_total",
		Help:      "Total compile errors by zerr.Kind.",
	}, []string{"kind"})

	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zplgrid",
		Name:      "counter_commits_total",
		Help:      "Total counter-store commits by scope key.",
	}, []string{"scope"})

	registry.MustRegister(duration, errs, commits)

	reg = registry
	compileDuration = duration
	compileErrors = errs
	counterCommits = commits
}

func sanitizeLabel(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	var b strings.Builder
	for _, r := range v {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ':' || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func durationSeconds(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return d.Seconds()
}
