package codec

import (
	"encoding/json"
	"fmt"
	"io"
)

// AnsibleJSONCodec exports the dynamic inventory document Ansible expects
// from an inventory script called with --list
type AnsibleJSONCodec struct{}

// NewAnsibleJSONCodec creates a new Ansible dynamic inventory codec
func NewAnsibleJSONCodec() *AnsibleJSONCodec {
	return &AnsibleJSONCodec{}
}

// Format returns the codec format identifier
func (c *AnsibleJSONCodec) Format() string {
	return "ansible-json"
}

type dynamicGroup struct {
	Hosts    []string `json:"hosts"`
	Children []string `json:"children,omitempty"`
}

type dynamicMeta struct {
	HostVars map[string]map[string]interface{} `json:"hostvars"`
}

// Export writes every group key with its hosts, an "all" group whose
// children are the group keys, and _meta.hostvars so Ansible does not call
// back with --host for each host.
func (c *AnsibleJSONCodec) Export(inv *Inventory, w io.Writer) error {
	dump := inv.Dump()

	doc := make(map[string]interface{}, len(dump)+2)
	for key, hosts := range dump {
		doc[key] = dynamicGroup{Hosts: hosts}
	}
	doc["all"] = dynamicGroup{Hosts: []string{}, Children: dump.Keys()}
	doc["_meta"] = dynamicMeta{HostVars: inv.HostVars()}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode dynamic inventory: %w", err)
	}

	return nil
}

// ExportHost writes the vars of one host, or {} for an unknown host, as
// answered to an inventory script called with --host
func (c *AnsibleJSONCodec) ExportHost(inv *Inventory, host string, w io.Writer) error {
	vars := inv.HostVars()[host]
	if vars == nil {
		vars = map[string]interface{}{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(vars); err != nil {
		return fmt.Errorf("failed to encode host vars: %w", err)
	}

	return nil
}
