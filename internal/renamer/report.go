package renamer

import (
	"fmt"
	"time"

	"github.com/nsetools/stockcsv/internal/util"
)

// OutcomeStatus is the result of processing one file
type OutcomeStatus string

const (
	StatusRenamed   OutcomeStatus = "renamed"
	StatusCanonical OutcomeStatus = "canonical"
	StatusFailed    OutcomeStatus = "failed"
)

// Outcome records what happened to a single file
type Outcome struct {
	Name    string
	NewName string
	Status  OutcomeStatus
	Err     *FileError
}

// Tracker collects per-file outcomes and prints the end-of-run summary
type Tracker struct {
	headerPrefix string
	dryRun       bool
	startTime    time.Time
	endTime      time.Time
	files        []Outcome
	logger       util.Logger
	quietMode    bool
	showProgress bool
}

func NewTracker(headerPrefix string, dryRun bool, logger util.Logger, quietMode, showProgress bool) *Tracker {
	return &Tracker{
		headerPrefix: headerPrefix,
		dryRun:       dryRun,
		startTime:    time.Now(),
		files:        make([]Outcome, 0),
		logger:       logger,
		quietMode:    quietMode,
		showProgress: showProgress,
	}
}

// Record stores an outcome and reports it. While a progress bar is shown the
// per-file lines are suppressed so they do not interleave with the bar.
func (t *Tracker) Record(outcome Outcome) {
	t.files = append(t.files, outcome)

	if t.quietMode || t.showProgress {
		return
	}

	switch outcome.Status {
	case StatusRenamed:
		if t.dryRun {
			t.logger.Printf("Would rename %s -> %s\n", outcome.Name, outcome.NewName)
		} else {
			t.logger.Printf("Renamed %s -> %s\n", outcome.Name, outcome.NewName)
		}
	case StatusCanonical:
		t.logger.Printf("File %s starts with %s\n", outcome.Name, t.headerPrefix)
	case StatusFailed:
		t.logger.Printf("✗ %s (%s: %v)\n", outcome.Name, outcome.Err.Kind, outcome.Err.Err)
	}
}

// Failures returns the collected per-file errors in processing order
func (t *Tracker) Failures() []*FileError {
	var failures []*FileError
	for _, file := range t.files {
		if file.Status == StatusFailed {
			failures = append(failures, file.Err)
		}
	}
	return failures
}

func (t *Tracker) PrintSummary() {
	t.endTime = time.Now()

	if t.quietMode {
		return
	}

	var renamed, canonical, failed int
	for _, file := range t.files {
		switch file.Status {
		case StatusRenamed:
			renamed++
		case StatusCanonical:
			canonical++
		case StatusFailed:
			failed++
		}
	}

	action := "renamed"
	if t.dryRun {
		action = "to rename"
	}

	summary := fmt.Sprintf("Files %s: %d", action, renamed)
	if canonical > 0 {
		summary += fmt.Sprintf(", canonical: %d", canonical)
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
