package output

import (
	"fmt"
	"io"

	"github.com/temirov/tree/internal/types"
)

// TreeRenderer receives trees one at a time: Begin, then every node in
// pre-order, then End with the final counts. Flush completes the document.
type TreeRenderer interface {
	Begin(tree Tree) error
	Handle(node types.TreeNode) error
	End(stats types.Stats) error
	Flush() error
}

// NewTreeRenderer selects the renderer for options.Format. An empty format is raw.
func NewTreeRenderer(writer io.Writer, options Options) (TreeRenderer, error) {
	switch options.Format {
	case "", types.FormatRaw:
		return NewRawStreamRenderer(writer, options), nil
	case types.FormatJSON:
		return newStructuredRenderer(writer, options, encodeJSON), nil
	case types.FormatXML:
		return newStructuredRenderer(writer, options, encodeXML), nil
	case types.FormatYAML:
		return newStructuredRenderer(writer, options, encodeYAML), nil
	default:
		return nil, fmt.Errorf(errorUnsupportedFormat, options.Format)
	}
}
