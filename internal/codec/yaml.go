package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec exports the inventory groups with their hierarchy as YAML
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Export writes the group list in hierarchy order
func (c *YAMLCodec) Export(inv *Inventory, w io.Writer) error {
	out := Inventory{Groups: make([]Group, 0, len(inv.Groups))}
	for _, g := range inv.Groups {
		if g.Hosts == nil {
			g.Hosts = []string{}
		}
		out.Groups = append(out.Groups, g)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
