// Package output renders walked trees as raw text or as structured documents.
package output

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/temirov/tree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	directorySuffix = "/"

	errorOpeningDirectoryMarker = " [error opening dir]"
	brokenSymlinkMarker         = " [broken symlink]"
	errorReadingEntryMarker     = " [error reading entry]"

	directorySingular = "directory"
	directoryPlural   = "directories"
	fileSingular      = "file"
	filePlural        = "files"
	summaryLineFormat = "%d %s, %d %s"

	errorWriteFormat          = "writing to %s: %v"
	errorUnsupportedFormat    = "unsupported output format %q"
	errorStackMismatchFormat  = "directory stack mismatch at %s (depth %d)"
	defaultDestinationDisplay = "stdout"
)

// Tree is one validated root together with the lazy sequence of its nodes.
// Stats is filled by the walker while Nodes is consumed.
type Tree struct {
	Root         string
	AbsoluteRoot string
	Nodes        iter.Seq[types.TreeNode]
	Stats        *types.Stats
}

// Options controls how trees are rendered.
type Options struct {
	Format      string
	NoIndent    bool
	FullPath    bool
	Color       bool
	Destination string
}

// WriteError reports a failure writing rendered output. It is fatal.
type WriteError struct {
	Destination string
	Err         error
}

func (writeError *WriteError) Error() string {
	return fmt.Sprintf(errorWriteFormat, writeError.Destination, writeError.Err)
}

func (writeError *WriteError) Unwrap() error {
	return writeError.Err
}

// Render consumes every tree's node sequence exactly once, in order, and
// writes the result to writer.
func Render(writer io.Writer, trees []Tree, options Options) error {
	renderer, rendererError := NewTreeRenderer(writer, options)
	if rendererError != nil {
		return rendererError
	}
	for _, tree := range trees {
		if beginError := renderer.Begin(tree); beginError != nil {
			return beginError
		}
		if tree.Nodes != nil {
			for node := range tree.Nodes {
				if handleError := renderer.Handle(node); handleError != nil {
					return handleError
				}
			}
		}
		var stats types.Stats
		if tree.Stats != nil {
			stats = *tree.Stats
		}
		if endError := renderer.End(stats); endError != nil {
			return endError
		}
	}
	return renderer.Flush()
}

// FormatSummaryLine formats the counts printed after each raw tree.
func FormatSummaryLine(stats types.Stats) string {
	directoryLabel := directoryPlural
	if stats.Directories == 1 {
		directoryLabel = directorySingular
	}
	fileLabel := filePlural
	if stats.Files == 1 {
		fileLabel = fileSingular
	}
	return fmt.Sprintf(summaryLineFormat, stats.Directories, directoryLabel, stats.Files, fileLabel)
}

// headerPath is the display form of a tree root: the root as given, or its
// absolute path in full-path mode.
func headerPath(tree Tree, options Options) string {
	if options.FullPath && tree.AbsoluteRoot != "" {
		return tree.AbsoluteRoot
	}
	return tree.Root
}

func withDirectorySuffix(path string) string {
	if strings.HasSuffix(path, directorySuffix) {
		return path
	}
	return path + directorySuffix
}

func destinationName(options Options) string {
	if options.Destination == "" {
		return defaultDestinationDisplay
	}
	return options.Destination
}
