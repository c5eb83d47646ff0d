package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	r := New()
	r.Transition("application", "approved", nil)
	r.Transition("application", "approved", errors.New("x"))
	r.Action("application:1", 1500*time.Millisecond, nil)
	r.Export("jobs")

	if got := testutil.ToFloat64(r.transitions.WithLabelValues("application", "approved", "ok")); got != 1 {
		t.Fatalf("ok transitions = %v", got)
	}
	if got := testutil.ToFloat64(r.transitions.WithLabelValues("application", "approved", "error")); got != 1 {
		t.Fatalf("error transitions = %v", got)
	}
	if got := testutil.ToFloat64(r.exports.WithLabelValues("jobs")); got != 1 {
		t.Fatalf("exports = %v", got)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "shiftboard_action_duration_seconds") {
		t.Fatal("histogram missing from exposition")
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Transition("job", "active", nil)
	r.Action("k", time.Second, nil)
	r.Export("jobs")
}
