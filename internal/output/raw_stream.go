package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/temirov/tree/internal/types"
	"github.com/temirov/tree/internal/walker"
)

type rawStreamRenderer struct {
	writer         io.Writer
	options        Options
	directoryStyle *color.Color
	errorStyle     *color.Color
	// ancestorHasMore[i] is true while the ancestor at depth i+1 has siblings still to come.
	ancestorHasMore []bool
}

// NewRawStreamRenderer writes one line per node as the nodes arrive.
func NewRawStreamRenderer(writer io.Writer, options Options) TreeRenderer {
	directoryStyle := color.New(color.FgBlue, color.Bold)
	errorStyle := color.New(color.FgRed)
	if options.Color {
		directoryStyle.EnableColor()
		errorStyle.EnableColor()
	} else {
		directoryStyle.DisableColor()
		errorStyle.DisableColor()
	}
	return &rawStreamRenderer{
		writer:         writer,
		options:        options,
		directoryStyle: directoryStyle,
		errorStyle:     errorStyle,
	}
}

func (renderer *rawStreamRenderer) Begin(tree Tree) error {
	renderer.ancestorHasMore = renderer.ancestorHasMore[:0]
	return renderer.writeLine(renderer.directoryStyle.Sprint(withDirectorySuffix(headerPath(tree, renderer.options))))
}

func (renderer *rawStreamRenderer) Handle(node types.TreeNode) error {
	if node.Depth < 1 || node.Depth-1 > len(renderer.ancestorHasMore) {
		return fmt.Errorf(errorStackMismatchFormat, node.Path, node.Depth)
	}
	renderer.ancestorHasMore = renderer.ancestorHasMore[:node.Depth-1]

	var line strings.Builder
	if !renderer.options.NoIndent {
		for _, hasMore := range renderer.ancestorHasMore {
			if hasMore {
				line.WriteString(treeBranchPadding)
			} else {
				line.WriteString(treeLastPadding)
			}
		}
		if node.IsLast {
			line.WriteString(treeLastConnector)
		} else {
			line.WriteString(treeBranchConnector)
		}
	}
	renderer.ancestorHasMore = append(renderer.ancestorHasMore, !node.IsLast)

	line.WriteString(renderer.displayName(node))
	if node.HasReadError() {
		line.WriteString(renderer.errorStyle.Sprint(readErrorMarker(node)))
	}
	return renderer.writeLine(line.String())
}

func (renderer *rawStreamRenderer) End(stats types.Stats) error {
	if writeError := renderer.writeLine(""); writeError != nil {
		return writeError
	}
	return renderer.writeLine(FormatSummaryLine(stats))
}

func (renderer *rawStreamRenderer) Flush() error {
	return nil
}

func (renderer *rawStreamRenderer) displayName(node types.TreeNode) string {
	if renderer.options.FullPath {
		if node.IsDirectory {
			return renderer.directoryStyle.Sprint(node.Path)
		}
		return node.Path
	}
	if node.IsDirectory {
		return renderer.directoryStyle.Sprint(node.Name + directorySuffix)
	}
	return node.Name
}

func (renderer *rawStreamRenderer) writeLine(line string) error {
	if _, writeError := fmt.Fprintln(renderer.writer, line); writeError != nil {
		return &WriteError{Destination: destinationName(renderer.options), Err: writeError}
	}
	return nil
}

func readErrorMarker(node types.TreeNode) string {
	switch {
	case errors.Is(node.ReadError, walker.ErrBrokenSymlink):
		return brokenSymlinkMarker
	case node.IsDirectory:
		return errorOpeningDirectoryMarker
	default:
		return errorReadingEntryMarker
	}
}
