package loader

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"inventory/internal/config"
	"inventory/internal/domain"
)

// InventoryYAML represents the YAML file structure. Lists keep file order,
// which becomes ID order once applied.
type InventoryYAML struct {
	Version   string         `yaml:"version"`
	Companies []*CompanyYAML `yaml:"companies"`
}

// CompanyYAML represents a company and its offices
type CompanyYAML struct {
	Name    string        `yaml:"name"`
	Offices []*OfficeYAML `yaml:"offices,omitempty"`
}

// OfficeYAML represents an office with its groups and hosts
type OfficeYAML struct {
	Name   string      `yaml:"name"`
	Groups []string    `yaml:"groups,omitempty"`
	Hosts  []*HostYAML `yaml:"hosts,omitempty"`
}

// HostYAML represents a host and the groups it belongs to
type HostYAML struct {
	Name   string   `yaml:"name"`
	Groups []string `yaml:"groups"`
}

//go:embed demo.yaml
var demo []byte

// Demo returns the built-in demonstration inventory
func Demo() (*InventoryYAML, error) {
	return ParseYAML(demo)
}

// LoadYAML loads an inventory from a YAML file
func LoadYAML(path string) (*InventoryYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses and validates an inventory from YAML bytes
func ParseYAML(data []byte) (*InventoryYAML, error) {
	var y InventoryYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := y.Validate(); err != nil {
		return nil, err
	}

	return &y, nil
}

// Validate checks that every entry is named and that hosts only reference
// groups declared in their office
func (y *InventoryYAML) Validate() error {
	for i, c := range y.Companies {
		if c.Name == "" {
			return fmt.Errorf("company %d: name is required", i)
		}
		for j, o := range c.Offices {
			if o.Name == "" {
				return fmt.Errorf("%s: office %d: name is required", c.Name, j)
			}

			declared := make(map[string]bool, len(o.Groups))
			for _, g := range o.Groups {
				if g == "" {
					return fmt.Errorf("%s/%s: empty group name", c.Name, o.Name)
				}
				if declared[g] {
					return fmt.Errorf("%s/%s: group %q is declared twice", c.Name, o.Name, g)
				}
				declared[g] = true
			}

			for k, h := range o.Hosts {
				if h.Name == "" {
					return fmt.Errorf("%s/%s: host %d: name is required", c.Name, o.Name, k)
				}
				if len(h.Groups) == 0 {
					return fmt.Errorf("%s/%s/%s: at least one group is required", c.Name, o.Name, h.Name)
				}
				for _, g := range h.Groups {
					if !declared[g] {
						return fmt.Errorf("%s/%s/%s: group %q is not declared in the office", c.Name, o.Name, h.Name, g)
					}
				}
			}
		}
	}
	return nil
}

// Target is the part of the inventory manager the loader drives
type Target interface {
	GroupScope() config.GroupScope
	GetCompany(ctx context.Context, name string) (*domain.Company, error)
	AddCompany(ctx context.Context, name string) (*domain.Company, error)
	GetOffice(ctx context.Context, name, company string) (*domain.Office, error)
	GetOffices(ctx context.Context, company string) ([]*domain.Office, error)
	AddOffice(ctx context.Context, name, company string) (*domain.Office, error)
	GetGroup(ctx context.Context, name, company, office string) (*domain.Group, error)
	GetGroups(ctx context.Context, company, office string) ([]*domain.Group, error)
	AddGroup(ctx context.Context, name, company, office string) (*domain.Group, error)
	GetHost(ctx context.Context, name, company, office string) (*domain.Host, error)
	AddHost(ctx context.Context, name, company, office string, groups []string) (*domain.Host, error)
}

// Result counts what Apply created and what was already present
type Result struct {
	Created map[domain.EntityType]int `json:"created"`
	Existed map[domain.EntityType]int `json:"existed"`
}

func newResult() *Result {
	return &Result{
		Created: make(map[domain.EntityType]int),
		Existed: make(map[domain.EntityType]int),
	}
}

// Apply creates every entry of y that the target does not have yet.
// Existing entries are left as they are, so applying a file twice is a
// no-op. Group names that would clash under the target's scope are
// rejected before anything is written. Apply otherwise stops at the first
// failure; entries created before it stay.
func Apply(ctx context.Context, t Target, y *InventoryYAML) (*Result, error) {
	res := newResult()

	if err := checkGroupScope(ctx, t, y); err != nil {
		return res, err
	}

	for _, c := range y.Companies {
		if err := ensure(res, domain.EntityCompany, func() error {
			_, err := t.GetCompany(ctx, c.Name)
			return err
		}, func() error {
			_, err := t.AddCompany(ctx, c.Name)
			return err
		}); err != nil {
			return res, err
		}

		for _, o := range c.Offices {
			if err := ensure(res, domain.EntityOffice, func() error {
				_, err := t.GetOffice(ctx, o.Name, c.Name)
				return err
			}, func() error {
				_, err := t.AddOffice(ctx, o.Name, c.Name)
				return err
			}); err != nil {
				return res, err
			}

			for _, g := range o.Groups {
				if err := ensure(res, domain.EntityGroup, func() error {
					_, err := t.GetGroup(ctx, g, c.Name, o.Name)
					return err
				}, func() error {
					_, err := t.AddGroup(ctx, g, c.Name, o.Name)
					return err
				}); err != nil {
					return res, err
				}
			}

			for _, h := range o.Hosts {
				if err := ensure(res, domain.EntityHost, func() error {
					_, err := t.GetHost(ctx, h.Name, c.Name, o.Name)
					return err
				}, func() error {
					_, err := t.AddHost(ctx, h.Name, c.Name, o.Name, h.Groups)
					return err
				}); err != nil {
					return res, err
				}
			}
		}
	}

	return res, nil
}

// checkGroupScope rejects a group declared in one office when the same
// company already uses the name in another office, either in the file or in
// the target. Per-office scope allows that, so nothing is checked.
func checkGroupScope(ctx context.Context, t Target, y *InventoryYAML) error {
	if t.GroupScope().PerOffice() {
		return nil
	}

	// company -> group -> offices using it
	seen := make(map[string]map[string][]string)
	for _, c := range y.Companies {
		owners, ok := seen[c.Name]
		if !ok {
			var err error
			if owners, err = storedGroups(ctx, t, c.Name); err != nil {
				return err
			}
			seen[c.Name] = owners
		}

		for _, o := range c.Offices {
			for _, g := range o.Groups {
				for _, other := range owners[g] {
					if other != o.Name {
						return domain.AlreadyExists(domain.EntityGroup, c.Name+"/"+other+"/"+g)
					}
				}
				owners[g] = append(owners[g], o.Name)
			}
		}
	}
	return nil
}

// storedGroups maps each group name of a company to the offices holding it.
// An unknown company has none.
func storedGroups(ctx context.Context, t Target, company string) (map[string][]string, error) {
	owners := make(map[string][]string)

	_, err := t.GetCompany(ctx, company)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return owners, nil
	case err != nil:
		return nil, err
	}

	offices, err := t.GetOffices(ctx, company)
	if err != nil {
		return nil, err
	}
	for _, o := range offices {
		groups, err := t.GetGroups(ctx, company, o.Name)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			owners[g.Name] = append(owners[g.Name], o.Name)
		}
	}
	return owners, nil
}

// ensure runs add when get reports the entry as not found
func ensure(res *Result, kind domain.EntityType, get, add func() error) error {
	err := get()
	switch {
	case err == nil:
		res.Existed[kind]++
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	if err := add(); err != nil {
		return err
	}
	res.Created[kind]++
	return nil
}
