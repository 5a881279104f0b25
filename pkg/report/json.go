package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/sillydeps/pkg/classify"
)

// WriteJSON encodes r in its export shape, indented, and writes it to w.
func WriteJSON(w io.Writer, r *classify.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes r to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(r *classify.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
