package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// PathError reports a scan root that does not exist or is not a directory.
// It is fatal before collection starts.
type PathError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("path %s: %s", e.Path, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// ValidationError reports a rejected target name: a manual edit that is
// empty or contains a separator, or a tag-stripped name that came out empty.
type ValidationError struct {
	Name    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Message)
}

// CollisionKind tells the two collision causes apart.
type CollisionKind int

const (
	// DuplicateTarget means several candidates want the same target path.
	DuplicateTarget CollisionKind = iota
	// TargetExists means the target is already occupied on disk.
	TargetExists
)

// CollisionError is the per-candidate error for an unresolved collision.
type CollisionError struct {
	Kind   CollisionKind
	Target string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	switch e.Kind {
	case TargetExists:
		return "target already exists on disk"
	default:
		return "another item already targets this name"
	}
}

// FilesystemErrorKind classifies a failed rename.
type FilesystemErrorKind int

const (
	FSOther FilesystemErrorKind = iota
	FSPermission
	FSNotFound
	FSNameTooLong
	FSBusy
)

// String returns a short label for the kind.
func (k FilesystemErrorKind) String() string {
	switch k {
	case FSPermission:
		return "permission denied"
	case FSNotFound:
		return "not found"
	case FSNameTooLong:
		return "name too long"
	case FSBusy:
		return "in use"
	default:
		return "filesystem error"
	}
}

// FilesystemError wraps an OS failure for one candidate.
type FilesystemError struct {
	Kind FilesystemErrorKind
	Op   string
	Path string
	Err  error
}

// NewFilesystemError classifies err.
func NewFilesystemError(op, path string, err error) *FilesystemError {
	return &FilesystemError{Kind: classify(err), Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, rootCause(e.Err))
}

// Unwrap returns the underlying error.
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func classify(err error) FilesystemErrorKind {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return FSPermission
	case errors.Is(err, fs.ErrNotExist):
		return FSNotFound
	case errors.Is(err, syscall.ENAMETOOLONG):
		return FSNameTooLong
	case errors.Is(err, syscall.EBUSY), errors.Is(err, syscall.ETXTBSY):
		return FSBusy
	default:
		return FSOther
	}
}

// rootCause strips *os.LinkError/*fs.PathError wrappers whose paths are
// already part of the message.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// ScanError reports an entry that could not be read during collection.
type ScanError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("unreadable: %v", rootCause(e.Err))
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// resolutionOwned reports whether err was produced by Resolve and may be
// recomputed by a later Resolve call.
func resolutionOwned(err error) bool {
	var ce *CollisionError
	var ve *ValidationError
	return errors.As(err, &ce) || errors.As(err, &ve)
}
