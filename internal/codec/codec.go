package codec

import (
	"fmt"
	"io"
	"sort"

	"inventory/internal/domain"
)

// Dump maps "{company}_{office}_{group}" to the names of the group's hosts
type Dump map[string][]string

// Keys returns the group keys in lexical order
func (d Dump) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Group is one inventory group as exported, with its place in the hierarchy
type Group struct {
	Company string   `json:"company" yaml:"company"`
	Office  string   `json:"office" yaml:"office"`
	Name    string   `json:"name" yaml:"name"`
	Hosts   []string `json:"hosts" yaml:"hosts"`
}

// Key returns the group's dump key
func (g Group) Key() string {
	return domain.InventoryGroupName(g.Company, g.Office, g.Name)
}

// Inventory is the exported view of the hierarchy. Groups are in
// company, office, group ID order.
type Inventory struct {
	Groups []Group `json:"groups" yaml:"groups"`
}

// Dump flattens the inventory into group keys. Every group gets a key,
// even one without hosts.
func (inv *Inventory) Dump() Dump {
	d := make(Dump, len(inv.Groups))
	for _, g := range inv.Groups {
		hosts := make([]string, len(g.Hosts))
		copy(hosts, g.Hosts)
		d[g.Key()] = hosts
	}
	return d
}

// HostVars returns the variables of every host, keyed by host name. A host
// name used in two offices keeps the vars of the last one.
func (inv *Inventory) HostVars() map[string]map[string]interface{} {
	vars := make(map[string]map[string]interface{})
	for _, g := range inv.Groups {
		for _, h := range g.Hosts {
			vars[h] = map[string]interface{}{
				"company": g.Company,
				"office":  g.Office,
			}
		}
	}
	return vars
}

// Exporter interface for exporting the inventory to various formats
type Exporter interface {
	Export(inv *Inventory, w io.Writer) error
	Format() string
}

var exporters = []Exporter{
	NewAnsibleJSONCodec(),
	NewAnsibleCodec(),
	NewJSONCodec(),
	NewYAMLCodec(),
}

// Formats lists the supported export format identifiers
func Formats() []string {
	names := make([]string, 0, len(exporters))
	for _, e := range exporters {
		names = append(names, e.Format())
	}
	return names
}

// ForFormat returns the exporter for a format identifier
func ForFormat(name string) (Exporter, error) {
	for _, e := range exporters {
		if e.Format() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Formats())
}
