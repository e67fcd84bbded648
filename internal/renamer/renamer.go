// Package renamer implements the batch rename of raw stock data CSV files.
//
// Each raw download carries a symbol row as its first line
// (e.g. "RELIANCE,2023-01-01,100"). The renamer moves every matched file to
// "<symbol>.csv" with that first line stripped, so the proper header row
// becomes the first line. Files whose first line already starts with the
// configured header prefix are left untouched, which makes a second run over
// the same directory a no-op.
package renamer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nsetools/stockcsv/internal/backup"
	"github.com/nsetools/stockcsv/internal/config"
	"github.com/nsetools/stockcsv/internal/progress"
	"github.com/nsetools/stockcsv/internal/util"
)

// Run processes every file in dir matching cfg.GlobPattern through the
// header-derived rename procedure. The file set is enumerated once up front;
// a failure on one file never aborts the rest of the batch.
func Run(dir string, cfg *config.Config, opts *Options) RunStatus {
	names, err := util.Expand(dir, cfg.GlobPattern)
	if err != nil {
		opts.Logger.Printf("Error: %v\n", err)
		return RunError
	}

	if len(names) == 0 {
		opts.Logger.VerbosePrintf("No files matching '%s' in %s\n", cfg.GlobPattern, dir)
		return RunSuccess
	}

	if opts.BackupFile != "" && !opts.DryRun {
		if err := writeBackup(dir, names, opts); err != nil {
			opts.Logger.Printf("Error: backup failed, nothing renamed: %v\n", err)
			return RunError
		}
		opts.Logger.VerbosePrintf("Backed up %d file(s) to %s\n", len(names), opts.BackupFile)
	}

	showProgress := util.IsATTY() && !opts.QuietMode && len(names) > 1
	tracker := NewTracker(cfg.HeaderPrefix, opts.DryRun, opts.Logger, opts.QuietMode, showProgress)
	bar := progress.NewFileBar(len(names), "Renaming", showProgress)

	for _, name := range names {
		tracker.Record(processFile(dir, name, cfg.HeaderPrefix, opts))
		bar.Add(1)
	}

	bar.Finish()
	tracker.PrintSummary()

	if len(tracker.Failures()) > 0 {
		return RunError
	}
	return RunSuccess
}

// processFile applies the four-step procedure to a single file: read the
// first line, derive the candidate name, skip if already canonical, otherwise
// move the remaining content to "<candidate>.csv" and remove the original.
func processFile(dir, name, headerPrefix string, opts *Options) Outcome {
	path := filepath.Join(dir, name)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failed(name, KindNotFound, err)
		}
		return failed(name, KindIOError, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	firstLine, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return failed(name, KindIOError, err)
	}

	candidate := strings.TrimRight(firstLine, "\r\n")
	if i := strings.IndexByte(candidate, ','); i >= 0 {
		candidate = candidate[:i]
	}

	if strings.HasPrefix(candidate, headerPrefix) {
		return Outcome{Name: name, Status: StatusCanonical}
	}

	if err := validateDerivedName(candidate); err != nil {
		return failed(name, KindIOError, err)
	}

	newName := candidate + ".csv"
	target := filepath.Join(dir, newName)

	if info, statErr := os.Stat(target); statErr == nil {
		orig, origErr := os.Stat(path)
		sameFile := origErr == nil && os.SameFile(info, orig)
		if !sameFile && !opts.Force {
			return failed(name, KindNameCollision, fmt.Errorf("'%s' already exists", newName))
		}
	}

	if opts.DryRun {
		return Outcome{Name: name, NewName: newName, Status: StatusRenamed}
	}

	mode := os.FileMode(0o644)
	if info, statErr := file.Stat(); statErr == nil {
		mode = info.Mode().Perm()
	}

	if err := writeWithoutHeader(dir, target, reader, mode); err != nil {
		return failed(name, KindIOError, err)
	}

	// When the derived name equals the original name the rename above already
	// replaced the file in place; removing it would delete the output.
	if newName != name {
		if err := os.Remove(path); err != nil {
			return failed(name, KindIOError, err)
		}
	}

	return Outcome{Name: name, NewName: newName, Status: StatusRenamed}
}

// writeWithoutHeader copies the remaining content to a temp file in the same
// directory and renames it over the target, so a partially written output
// never lands under the final name. The output keeps the original file mode.
func writeWithoutHeader(dir, target string, reader io.Reader, mode os.FileMode) error {
	tmp, err := os.CreateTemp(dir, ".stockcsv-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func validateDerivedName(candidate string) error {
	if candidate == "" {
		return errors.New("empty first field, cannot derive a file name")
	}
	if candidate == "." || candidate == ".." || strings.ContainsAny(candidate, "/\\") {
		return fmt.Errorf("first field '%s' is not a valid file name", candidate)
	}
	return nil
}

func writeBackup(dir string, names []string, opts *Options) error {
	format := opts.BackupFormat
	if format == "" {
		format = backup.Infer(opts.BackupFile)
	}

	file, err := os.Create(opts.BackupFile)
	if err != nil {
		return err
	}

	if err := format.Create(dir, names, file); err != nil {
		file.Close()
		os.Remove(opts.BackupFile)
		return err
	}
	return file.Close()
}

func failed(name string, kind Kind, err error) Outcome {
	return Outcome{
		Name:   name,
		Status: StatusFailed,
		Err:    &FileError{Path: name, Kind: kind, Err: err},
	}
}
