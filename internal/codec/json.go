package codec

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONCodec exports the raw group-to-hosts dump
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Export writes the dump mapping, keys sorted
func (c *JSONCodec) Export(inv *Inventory, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(inv.Dump()); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
