package output

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/temirov/tree/internal/types"
)

type documentEncoder func(writer io.Writer, documents []types.TreeOutput) error

// structuredRenderer nests the node stream into one document per tree and
// encodes every document on Flush.
type structuredRenderer struct {
	writer    io.Writer
	options   Options
	encode    documentEncoder
	builder   *treeBuilder
	documents []types.TreeOutput
}

func newStructuredRenderer(writer io.Writer, options Options, encode documentEncoder) TreeRenderer {
	return &structuredRenderer{writer: writer, options: options, encode: encode}
}

func (renderer *structuredRenderer) Begin(tree Tree) error {
	rootPath := headerPath(tree, renderer.options)
	rootName := filepath.Base(tree.AbsoluteRoot)
	if tree.AbsoluteRoot == "" {
		rootName = filepath.Base(tree.Root)
	}
	renderer.builder = newTreeBuilder(&types.TreeOutputNode{
		Name: rootName,
		Path: rootPath,
		Type: types.NodeTypeDirectory,
	})
	return nil
}

func (renderer *structuredRenderer) Handle(node types.TreeNode) error {
	return renderer.builder.add(node)
}

func (renderer *structuredRenderer) End(stats types.Stats) error {
	renderer.documents = append(renderer.documents, types.TreeOutput{Root: renderer.builder.root(), Summary: stats})
	renderer.builder = nil
	return nil
}

func (renderer *structuredRenderer) Flush() error {
	if encodeError := renderer.encode(renderer.writer, renderer.documents); encodeError != nil {
		return &WriteError{Destination: destinationName(renderer.options), Err: encodeError}
	}
	return nil
}

// treeBuilder keeps the chain of open directories; stack[d] is the node at depth d.
type treeBuilder struct {
	stack []*types.TreeOutputNode
}

func newTreeBuilder(root *types.TreeOutputNode) *treeBuilder {
	return &treeBuilder{stack: []*types.TreeOutputNode{root}}
}

func (builder *treeBuilder) root() *types.TreeOutputNode {
	return builder.stack[0]
}

func (builder *treeBuilder) add(node types.TreeNode) error {
	if node.Depth < 1 || node.Depth > len(builder.stack) {
		return fmt.Errorf(errorStackMismatchFormat, node.Path, node.Depth)
	}
	builder.stack = builder.stack[:node.Depth]
	parent := builder.stack[len(builder.stack)-1]

	outputNode := &types.TreeOutputNode{
		Name: node.Name,
		Path: node.Path,
		Type: types.NodeTypeFile,
	}
	if node.IsDirectory {
		outputNode.Type = types.NodeTypeDirectory
	}
	if node.HasReadError() {
		outputNode.Error = node.ReadError.Error()
	}
	parent.Children = append(parent.Children, outputNode)
	builder.stack = append(builder.stack, outputNode)
	return nil
}
