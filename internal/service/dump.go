package service

import (
	"context"

	"go.uber.org/zap"

	"inventory/internal/codec"
	"inventory/internal/repository"
)

// DumpHostsByGroup maps every group to its member host names under the
// "{company}_{office}_{group}" key. Groups without hosts map to an empty
// list. An empty inventory gives an empty map. When names containing "_"
// make two groups share a key, the later group in walk order wins.
func (m *Manager) DumpHostsByGroup(ctx context.Context) (codec.Dump, error) {
	inv, err := m.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	return inv.Dump(), nil
}

// Inventory walks companies, offices and groups in ID order and collects
// each group's hosts, also in ID order
func (m *Manager) Inventory(ctx context.Context) (*codec.Inventory, error) {
	log := m.log.With(zap.String("op", "dump"))

	companies, err := m.session.Companies(ctx, repository.CompanyFilter{})
	if err != nil {
		return nil, fail(log, "dump failed", err)
	}

	inv := &codec.Inventory{}
	owners := make(map[string]string)
	for _, company := range companies {
		offices, err := m.session.Offices(ctx, repository.OfficeFilter{CompanyID: company.ID})
		if err != nil {
			return nil, fail(log, "dump failed", err)
		}

		for _, office := range offices {
			groups, err := m.session.Groups(ctx, repository.GroupFilter{CompanyID: company.ID, OfficeID: office.ID})
			if err != nil {
				return nil, fail(log, "dump failed", err)
			}
			if len(groups) == 0 {
				continue
			}

			hosts, err := m.session.Hosts(ctx, repository.HostFilter{CompanyID: company.ID, OfficeID: office.ID})
			if err != nil {
				return nil, fail(log, "dump failed", err)
			}

			for _, group := range groups {
				key := group.InventoryName()
				if prev, ok := owners[key]; ok {
					log.Warn("dump key collision",
						zap.String("key", key),
						zap.String("group", group.Key()),
						zap.String("shadows", prev),
					)
				}
				owners[key] = group.Key()

				names := []string{}
				for _, h := range hosts {
					if h.InGroup(group.Name) {
						names = append(names, h.Name)
					}
				}
				inv.Groups = append(inv.Groups, codec.Group{
					Company: company.Name,
					Office:  office.Name,
					Name:    group.Name,
					Hosts:   names,
				})
			}
		}
	}

	log.Debug("inventory collected", zap.Int("groups", len(inv.Groups)))
	return inv, nil
}
