package renamer

import (
	"github.com/nsetools/stockcsv/internal/backup"
	"github.com/nsetools/stockcsv/internal/util"
)

// Options holds options for a rename run
type Options struct {
	Force        bool          // Overwrite an existing file on name collision
	DryRun       bool          // Report decisions without mutating the filesystem
	BackupFile   string        // Optional archive of the matched originals, written before any mutation
	BackupFormat backup.Format // Compression format for the backup archive (gzip or zstd)
	Logger       util.Logger
	QuietMode    bool
}

// RunStatus represents the exit status of a rename run
type RunStatus int

const (
	RunSuccess RunStatus = 0
	RunError   RunStatus = 1
)
