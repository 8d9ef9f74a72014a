package memfs

import "errors"

// Error kinds returned by namespace operations. They are always wrapped in a
// [PathError] so callers can recover the operation and path with errors.As
// and test the kind with errors.Is.
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrPathNotFound   = errors.New("directory not found")
	ErrFileNotFound   = errors.New("file not found")
	ErrDuplicateName  = errors.New("name already exists")
	ErrInvalidPath    = errors.New("invalid path")
	ErrInvalidPattern = errors.New("invalid pattern")
)

// PathError records a failed operation and the name or path it was given.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError wraps err with the operation and path that produced it.
func NewPathError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
