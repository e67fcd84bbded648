package renamer

import "fmt"

// Kind classifies per-file failures
type Kind string

const (
	KindNotFound      Kind = "NotFound"
	KindIOError       Kind = "IOError"
	KindNameCollision Kind = "NameCollision"
)

// FileError records a failure processing a single file. A FileError never
// aborts the batch; failures are collected and reported at the end.
type FileError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
