package dashboard

import (
	"testing"

	"github.com/Abraxas-365/shiftboard/recruitment/job"
)

func TestTallyKeepsKeyOrderAndZeroes(t *testing.T) {
	counts := Tally(job.Statuses, []job.JobStatus{
		job.JobStatusActive, job.JobStatusClosed, job.JobStatusActive, "archived",
	})
	want := map[string]int{"draft": 0, "active": 2, "paused": 0, "closed": 1}
	if len(counts) != len(job.Statuses) {
		t.Fatalf("got %d counts", len(counts))
	}
	for i, c := range counts {
		if c.Key != string(job.Statuses[i]) {
			t.Fatalf("position %d = %s", i, c.Key)
		}
		if c.Count != want[c.Key] {
			t.Fatalf("%s = %d, want %d", c.Key, c.Count, want[c.Key])
		}
	}
}

func TestWithPalette(t *testing.T) {
	counts := WithPalette(Tally(job.Statuses, nil), job.Palette)
	for _, c := range counts {
		if c.Display == nil || c.Display.Label == "" {
			t.Fatalf("%s has no display", c.Key)
		}
	}
}
