// Package weekfill patches weekly stock CSV files that are missing a week.
//
// Some weekly exports skip a week when the exchange was closed. For every
// matched file, if the previous week's date is absent from the first column
// while the current week's date is present, a synthetic row is inserted just
// before the current week's row, carrying the previous week's date and the
// current week's closing value.
package weekfill

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nsetools/stockcsv/internal/util"
)

// Options holds options for a fill-week run
type Options struct {
	PreviousWeek string // Date expected in the first column (e.g. "01/03/2024")
	CurrentWeek  string // Date whose row anchors the insertion
	DryRun       bool
	Logger       util.Logger
	QuietMode    bool
}

// RunStatus represents the exit status of a fill-week run
type RunStatus int

const (
	RunSuccess RunStatus = 0
	RunError   RunStatus = 1
)

// Run patches every file in dir matching globPattern. A failure on one file
// never aborts the rest of the batch.
func Run(dir, globPattern string, opts *Options) RunStatus {
	names, err := util.Expand(dir, globPattern)
	if err != nil {
		opts.Logger.Printf("Error: %v\n", err)
		return RunError
	}

	tracker := NewTracker(opts.DryRun, opts.Logger, opts.QuietMode)

	for _, name := range names {
		changed, err := fillFile(filepath.Join(dir, name), opts)
		switch {
		case err != nil:
			tracker.Record(Outcome{Name: name, Status: StatusFailed, Err: err})
		case changed:
			tracker.Record(Outcome{Name: name, Status: StatusUpdated})
		default:
			tracker.Record(Outcome{Name: name, Status: StatusUnchanged})
		}
	}

	tracker.PrintSummary()

	if len(tracker.Failures()) > 0 {
		return RunError
	}
	return RunSuccess
}

// fillFile inserts the missing week row if needed and reports whether the
// file was changed. The rewrite goes through a temp file in the same
// directory, then replaces the original.
func fillFile(path string, opts *Options) (bool, error) {
	weeks, err := firstColumn(path)
	if err != nil {
		return false, err
	}

	// First column values carry a time-of-day suffix ("07/03/2024 15:30:00"),
	// so week presence is a prefix check on the date.
	hasPrevious := false
	hasCurrent := false
	for _, week := range weeks {
		if strings.HasPrefix(week, opts.PreviousWeek) {
			hasPrevious = true
		}
		if strings.HasPrefix(week, opts.CurrentWeek) {
			hasCurrent = true
		}
	}
	if hasPrevious || !hasCurrent {
		return false, nil
	}

	if opts.DryRun {
		return true, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stockcsv-*")
	if err != nil {
		return false, err
	}
	tmpName := tmp.Name()

	// The rename below replaces the original, so the temp file must carry
	// the original's mode or the rewrite silently tightens permissions.
	mode := os.FileMode(0o644)
	if info, statErr := file.Stat(); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, err
	}

	if err := insertMissingWeek(file, tmp, opts.PreviousWeek, opts.CurrentWeek); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return false, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return false, err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return false, err
	}
	return true, nil
}

func insertMissingWeek(r io.Reader, w io.Writer, previousWeek, currentWeek string) error {
	scanner := bufio.NewScanner(r)
	writer := bufio.NewWriter(w)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, currentWeek) {
			fields := strings.Split(line, ",")
			if len(fields) < 2 {
				return fmt.Errorf("row for %s has no closing value", currentWeek)
			}
			closing := strings.TrimRight(fields[1], "\r")
			if _, err := fmt.Fprintf(writer, "%s 15:30:00,%s\n", previousWeek, closing); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writer.Flush()
}

func firstColumn(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var values []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, ','); i >= 0 {
			line = line[:i]
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
