package output

import (
	"encoding/xml"
	"io"

	"github.com/temirov/tree/internal/types"
)

const xmlResultsElement = "results"

// encodeXML writes a single tree as a <tree> document and several trees
// wrapped in a <results> element.
func encodeXML(writer io.Writer, documents []types.TreeOutput) error {
	if _, headerError := io.WriteString(writer, xml.Header); headerError != nil {
		return headerError
	}
	encoder := xml.NewEncoder(writer)
	encoder.Indent(indentPrefix, indentSpacer)

	var encodeError error
	if len(documents) == 1 {
		encodeError = encoder.Encode(documents[0])
	} else {
		wrapper := struct {
			XMLName xml.Name           `xml:""`
			Trees   []types.TreeOutput `xml:"tree"`
		}{
			XMLName: xml.Name{Local: xmlResultsElement},
			Trees:   documents,
		}
		encodeError = encoder.Encode(wrapper)
	}
	if encodeError != nil {
		return encodeError
	}
	if flushError := encoder.Flush(); flushError != nil {
		return flushError
	}
	_, newlineError := io.WriteString(writer, "\n")
	return newlineError
}
