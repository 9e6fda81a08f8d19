package output

import (
	"encoding/json"
	"io"

	"github.com/temirov/tree/internal/types"
)

// encodeJSON writes a single tree as an object and several trees as an array.
func encodeJSON(writer io.Writer, documents []types.TreeOutput) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent(indentPrefix, indentSpacer)
	encoder.SetEscapeHTML(false)
	if len(documents) == 1 {
		return encoder.Encode(documents[0])
	}
	if documents == nil {
		documents = []types.TreeOutput{}
	}
	return encoder.Encode(documents)
}
