package output

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/temirov/tree/internal/types"
)

const yamlIndentWidth = 2

// encodeYAML writes a single tree as a mapping and several trees as a sequence.
// The document is assembled in memory so write failures surface unchanged.
func encodeYAML(writer io.Writer, documents []types.TreeOutput) error {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndentWidth)

	var encodeError error
	if len(documents) == 1 {
		encodeError = encoder.Encode(documents[0])
	} else {
		if documents == nil {
			documents = []types.TreeOutput{}
		}
		encodeError = encoder.Encode(documents)
	}
	if encodeError != nil {
		return encodeError
	}
	if closeError := encoder.Close(); closeError != nil {
		return closeError
	}
	_, writeError := buffer.WriteTo(writer)
	return writeError
}
