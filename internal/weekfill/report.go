package weekfill

import (
	"fmt"
	"time"

	"github.com/nsetools/stockcsv/internal/util"
)

// OutcomeStatus is the result of processing one file
type OutcomeStatus string

const (
	StatusUpdated   OutcomeStatus = "updated"
	StatusUnchanged OutcomeStatus = "unchanged"
	StatusFailed    OutcomeStatus = "failed"
)

// Outcome records what happened to a single file
type Outcome struct {
	Name   string
	Status OutcomeStatus
	Err    error
}

// Tracker collects per-file outcomes and prints the end-of-run summary,
// matching the output contract of the rename tracker.
type Tracker struct {
	dryRun    bool
	startTime time.Time
	endTime   time.Time
	files     []Outcome
	logger    util.Logger
	quietMode bool
}

func NewTracker(dryRun bool, logger util.Logger, quietMode bool) *Tracker {
	return &Tracker{
		dryRun:    dryRun,
		startTime: time.Now(),
		files:     make([]Outcome, 0),
		logger:    logger,
		quietMode: quietMode,
	}
}

// Record stores an outcome and reports it
func (t *Tracker) Record(outcome Outcome) {
	t.files = append(t.files, outcome)

	if t.quietMode {
		return
	}

	switch outcome.Status {
	case StatusUpdated:
		if t.dryRun {
			t.logger.Printf("Would update %s\n", outcome.Name)
		} else {
			t.logger.Printf("Updated %s\n", outcome.Name)
		}
	case StatusUnchanged:
		t.logger.VerbosePrintf("Unchanged %s\n", outcome.Name)
	case StatusFailed:
		t.logger.Printf("✗ %s: %v\n", outcome.Name, outcome.Err)
	}
}

// Failures returns the collected per-file errors in processing order
func (t *Tracker) Failures() []error {
	var failures []error
	for _, file := range t.files {
		if file.Status == StatusFailed {
			failures = append(failures, fmt.Errorf("%s: %w", file.Name, file.Err))
		}
	}
	return failures
}

func (t *Tracker) PrintSummary() {
	t.endTime = time.Now()

	if t.quietMode {
		return
	}

	var updated, unchanged, failed int
	for _, file := range t.files {
		switch file.Status {
		case StatusUpdated:
			updated++
		case StatusUnchanged:
			unchanged++
		case StatusFailed:
			failed++
		}
	}

	action := "updated"
	if t.dryRun {
		action = "to update"
	}

	summary := fmt.Sprintf("Files %s: %d", action, updated)
	if unchanged > 0 {
		summary += fmt.Sprintf(", unchanged: %d", unchanged)
	}
	if failed > 0 {
		summary += fmt.Sprintf(", failed: %d", failed)
	}
	summary += fmt.Sprintf(", time: %s", util.FormatDuration(t.endTime.Sub(t.startTime)))

	t.logger.Println(summary)

	for _, failure := range t.Failures() {
		t.logger.Printf("Error: %s\n", failure)
	}
}
