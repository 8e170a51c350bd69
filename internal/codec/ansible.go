package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// AnsibleCodec exports a static Ansible YAML inventory
type AnsibleCodec struct{}

// NewAnsibleCodec creates a new Ansible codec
func NewAnsibleCodec() *AnsibleCodec {
	return &AnsibleCodec{}
}

// Format returns the codec format identifier
func (c *AnsibleCodec) Format() string {
	return "ansible-yaml"
}

// ansibleInventory represents the Ansible inventory structure
type ansibleInventory struct {
	All ansibleGroup `yaml:"all"`
}

type ansibleGroup struct {
	Children map[string]ansibleGroupDef `yaml:"children,omitempty"`
}

type ansibleGroupDef struct {
	Hosts map[string]ansibleHost `yaml:"hosts,omitempty"`
}

type ansibleHost struct {
	Vars map[string]interface{} `yaml:",inline"`
}

// Export writes one child of "all" per group key. Hosts carry their
// company and office as vars.
func (c *AnsibleCodec) Export(inv *Inventory, w io.Writer) error {
	out := ansibleInventory{
		All: ansibleGroup{
			Children: make(map[string]ansibleGroupDef, len(inv.Groups)),
		},
	}

	vars := inv.HostVars()
	for _, g := range inv.Groups {
		def := ansibleGroupDef{}
		if len(g.Hosts) > 0 {
			def.Hosts = make(map[string]ansibleHost, len(g.Hosts))
			for _, h := range g.Hosts {
				def.Hosts[h] = ansibleHost{Vars: vars[h]}
			}
		}
		out.All.Children[g.Key()] = def
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode Ansible inventory: %w", err)
	}

	return nil
}
