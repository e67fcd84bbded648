package progress

import (
	"fmt"
	"io"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// FileBar wraps a progress bar counting processed files in a batch
type FileBar struct {
	bar          *progressbar.ProgressBar
	showProgress bool
}

// Add records one more processed file
func (p *FileBar) Add(n int) error {
	return p.bar.Add(n)
}

// Describe sets the description of the progress bar
func (p *FileBar) Describe(description string) {
	p.bar.Describe(description)
}

// Finish completes the progress bar and prints a newline if progress is shown
func (p *FileBar) Finish() error {
	err := p.bar.Finish()
	if p.showProgress {
		fmt.Println()
	}
	return err
}

// NewFileBar creates a progress bar over a number of files.
// The showProgress parameter controls whether progress should be shown
// (typically util.IsATTY() && !quietMode).
func NewFileBar(totalFiles int, description string, showProgress bool) *FileBar {
	var writer io.Writer = ansi.NewAnsiStdout()
	if !showProgress {
		writer = io.Discard
	}

	bar := progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	return &FileBar{
		bar:          bar,
		showProgress: showProgress,
	}
}
