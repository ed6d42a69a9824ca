package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/metrics"
)

func TestObserveCompileAndIncCountersAppearInHandlerOutput(t *testing.T) {
	metrics.Reset()
	metrics.ObserveCompile("ok", 5*time.Millisecond)
	metrics.IncCompileError("layout")
	metrics.IncCounterCommit("daily|2026-07-31")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	metrics.Handler().ServeHTTP(rec, req)
	body := rec.Body.String()

	assert.Assert(t, strings.Contains(body, `zplgrid_compile_duration_seconds_count{outcome="ok"} 1`))
	assert.Assert(t, strings.Contains(body, `zplgrid_compile_errors_total{kind="layout"} 1`))
	assert.Assert(t, strings.Contains(body, `zplgrid_counter_commits_total{scope="daily_2026-07-31"}`))
}

func TestResetClearsPriorObservations(t *testing.T) {
	metrics.Reset()
	metrics.IncCompileError("schema")
	metrics.Reset()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	metrics.Handler().ServeHTTP(rec, req)
	assert.Assert(t, !contains(rec.Body.String(), `kind="schema"`))
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
