// Package walker performs the depth-first, pre-order descent of a directory
// hierarchy and exposes it as a lazy sequence of tree nodes.
//
// Entries are visited in byte-wise name order and filtered hidden first, then
// directories-only, then gitignore. Unreadable entries become nodes carrying a
// ReadError instead of aborting the walk.
package walker

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/tree/internal/gitignore"
	"github.com/temirov/tree/internal/types"
	"github.com/temirov/tree/internal/utils"
)

const (
	logMessageUnreadableEntry = "unreadable entry"
	logMessageExcludedEntry   = "excluded by gitignore"
	logFieldPath              = "path"
)

// Walker lists directories through an afero filesystem.
type Walker struct {
	fileSystem afero.Fs
	config     types.TraversalConfig
	rules      gitignore.RuleSet
	logger     *zap.Logger
}

// entry is a listed child after its symlink, if any, has been resolved.
type entry struct {
	name         string
	path         string
	relativePath string
	isDirectory  bool
	readError    error
}

type traversal struct {
	walker       *Walker
	root         string
	absoluteRoot string
	stats        *types.Stats
}

// New returns a Walker. The configuration is copied and never mutated.
func New(fileSystem afero.Fs, config types.TraversalConfig, rules gitignore.RuleSet, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		fileSystem: fileSystem,
		config:     config,
		rules:      rules,
		logger:     logger,
	}
}

// Walk validates root and returns the pre-order sequence of its descendants.
// The root itself is not part of the sequence. Every emitted node without a
// read error is recorded in stats while the sequence is consumed.
//
// A root that is missing, is not a directory, or cannot be listed yields a
// *RootError and no sequence.
func (walker *Walker) Walk(root string, stats *types.Stats) (iter.Seq[types.TreeNode], error) {
	rootInfo, statError := walker.fileSystem.Stat(root)
	if statError != nil {
		return nil, &RootError{Path: root, Err: statError}
	}
	if !rootInfo.IsDir() {
		return nil, &RootError{Path: root, Err: ErrNotDirectory}
	}
	rootListing, listError := walker.list(root)
	if listError != nil {
		return nil, &RootError{Path: root, Err: listError}
	}

	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		absoluteRoot = filepath.Clean(root)
	}
	if stats == nil {
		stats = &types.Stats{}
	}

	state := &traversal{
		walker:       walker,
		root:         root,
		absoluteRoot: absoluteRoot,
		stats:        stats,
	}
	return func(yield func(types.TreeNode) bool) {
		state.visit(root, rootListing, 1, yield)
	}, nil
}

func (walker *Walker) list(directoryPath string) ([]os.FileInfo, error) {
	fileInfos, readError := afero.ReadDir(walker.fileSystem, directoryPath)
	if readError != nil {
		return nil, readError
	}
	slices.SortFunc(fileInfos, func(left, right os.FileInfo) int {
		return strings.Compare(left.Name(), right.Name())
	})
	return fileInfos, nil
}

// resolve follows a symlink to decide whether the entry is a directory.
// A link whose target cannot be stat'ed is reported as a broken file.
func (walker *Walker) resolve(directoryPath string, fileInfo os.FileInfo) entry {
	childPath := filepath.Join(directoryPath, fileInfo.Name())
	resolved := entry{name: fileInfo.Name(), path: childPath, isDirectory: fileInfo.IsDir()}
	if fileInfo.Mode()&os.ModeSymlink == 0 {
		return resolved
	}
	targetInfo, statError := walker.fileSystem.Stat(childPath)
	if statError != nil {
		resolved.isDirectory = false
		resolved.readError = fmt.Errorf(errorBrokenSymlinkFormat, ErrBrokenSymlink, statError)
		return resolved
	}
	resolved.isDirectory = targetInfo.IsDir()
	return resolved
}

func (walker *Walker) excludedByGitignore(relativePath string, isDirectory bool) bool {
	if !walker.config.UseGitignore {
		return false
	}
	return gitignore.IsRootGitDirectory(relativePath) || walker.rules.Matches(relativePath, isDirectory)
}

// filter applies the hidden, directories-only and gitignore filters in that order.
func (state *traversal) filter(directoryPath string, fileInfos []os.FileInfo) []entry {
	config := state.walker.config
	entries := make([]entry, 0, len(fileInfos))
	for _, fileInfo := range fileInfos {
		if !config.ShowHidden && utils.IsHiddenName(fileInfo.Name()) {
			continue
		}
		child := state.walker.resolve(directoryPath, fileInfo)
		if config.DirectoriesOnly && !child.isDirectory {
			continue
		}
		child.relativePath = utils.RelativePathOrSelf(child.path, state.root)
		if state.walker.excludedByGitignore(child.relativePath, child.isDirectory) {
			state.walker.logger.Debug(logMessageExcludedEntry, zap.String(logFieldPath, child.relativePath))
			continue
		}
		entries = append(entries, child)
	}
	return entries
}

func (state *traversal) canDescend(depth int) bool {
	config := state.walker.config
	return !config.DepthLimited() || depth < config.MaxDepth
}

func (state *traversal) displayPath(child entry) string {
	if !state.walker.config.FullPath {
		return child.name
	}
	return filepath.Join(state.absoluteRoot, filepath.FromSlash(child.relativePath))
}

// visit emits the filtered children of directoryPath at the given depth and
// descends into each child directory right after emitting it. A directory is
// listed before it is emitted so a listing failure is carried on its own node.
// It returns false once the consumer stops.
func (state *traversal) visit(directoryPath string, fileInfos []os.FileInfo, depth int, yield func(types.TreeNode) bool) bool {
	children := state.filter(directoryPath, fileInfos)
	for childIndex, child := range children {
		node := types.TreeNode{
			Path:        state.displayPath(child),
			Name:        child.name,
			Depth:       depth,
			IsDirectory: child.isDirectory,
			IsLast:      childIndex == len(children)-1,
			ReadError:   child.readError,
		}

		var grandchildren []os.FileInfo
		descend := child.isDirectory && child.readError == nil && state.canDescend(depth)
		if descend {
			listing, listError := state.walker.list(child.path)
			if listError != nil {
				node.ReadError = listError
				descend = false
			}
			grandchildren = listing
		}
		if node.HasReadError() {
			state.walker.logger.Debug(logMessageUnreadableEntry, zap.String(logFieldPath, child.path), zap.Error(node.ReadError))
		}

		state.stats.Record(node)
		if !yield(node) {
			return false
		}
		if descend && !state.visit(child.path, grandchildren, depth+1, yield) {
			return false
		}
	}
	return true
}
