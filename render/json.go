package render

import (
	"io"

	"github.com/goccy/go-json"
)

// WriteJSON writes the document as indented JSON
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
