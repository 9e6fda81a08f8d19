package walker

import (
	"errors"
	"fmt"
)

const (
	errorRootFormat          = "%s: %v"
	errorBrokenSymlinkFormat = "%w: %w"
)

var (
	// ErrBrokenSymlink marks an entry whose link target does not resolve.
	ErrBrokenSymlink = errors.New("broken symlink")
	// ErrNotDirectory is reported when a traversal root is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// RootError reports a traversal root that is missing, is not a directory, or
// cannot be listed. No nodes are produced for such a root.
type RootError struct {
	Path string
	Err  error
}

func (rootError *RootError) Error() string {
	return fmt.Sprintf(errorRootFormat, rootError.Path, rootError.Err)
}

func (rootError *RootError) Unwrap() error {
	return rootError.Err
}
