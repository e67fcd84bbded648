package weekfill

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nsetools/stockcsv/internal/util"
)

func TestTrackerSummaryCounts(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(false, util.NewLogger(&buf), false)

	tracker.Record(Outcome{Name: "a.csv", Status: StatusUpdated})
	tracker.Record(Outcome{Name: "b.csv", Status: StatusUnchanged})
	tracker.Record(Outcome{Name: "c.csv", Status: StatusFailed, Err: errors.New("row for 07/03/2024 has no closing value")})
	tracker.PrintSummary()

	out := buf.String()
	if !strings.Contains(out, "Files updated: 1") {
		t.Errorf("summary missing updated count: %q", out)
	}
	if !strings.Contains(out, "unchanged: 1") {
		t.Errorf("summary missing unchanged count: %q", out)
	}
	if !strings.Contains(out, "failed: 1") {
		t.Errorf("summary missing failed count: %q", out)
	}
	if !strings.Contains(out, "time:") {
		t.Errorf("summary missing elapsed time: %q", out)
	}
	if len(tracker.Failures()) != 1 {
		t.Errorf("Failures() = %d, want 1", len(tracker.Failures()))
	}
}

func TestTrackerQuietMode(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewTracker(false, util.NewLogger(&buf), true)

	tracker.Record(Outcome{Name: "a.csv", Status: StatusUpdated})
	tracker.PrintSummary()

	if buf.Len() != 0 {
		t.Errorf("quiet mode wrote output: %q", buf.String())
	}
}
