package sqlite

import (
	"context"
	"fmt"

	"inventory/internal/domain"
	"inventory/internal/repository"
)

// Every lookup drains and closes its rows before returning. The store runs
// on a single connection, so an open cursor would block the next query.

// Companies returns the companies matching f, ordered by ID
func (s *Store) Companies(ctx context.Context, f repository.CompanyFilter) ([]*domain.Company, error) {
	var w where
	w.id("c.id", f.ID)
	w.str("c.name", f.Name)

	rows, err := s.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies c`+w.String()+` ORDER BY c.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []*domain.Company
	for rows.Next() {
		var row companyRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}

// Offices returns the offices matching f, ordered by ID
func (s *Store) Offices(ctx context.Context, f repository.OfficeFilter) ([]*domain.Office, error) {
	var w where
	w.id("o.id", f.ID)
	w.id("o.company_id", f.CompanyID)
	w.str("o.name", f.Name)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+officeColumns+`
		FROM offices o
		JOIN companies c ON c.id = o.company_id`+w.String()+`
		ORDER BY o.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer rows.Close()

	var offices []*domain.Office
	for rows.Next() {
		var row officeRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan office: %w", err)
		}
		offices = append(offices, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offices: %w", err)
	}

	return offices, nil
}

// Groups returns the groups matching f, ordered by ID
func (s *Store) Groups(ctx context.Context, f repository.GroupFilter) ([]*domain.Group, error) {
	var w where
	w.id("g.id", f.ID)
	w.id("g.company_id", f.CompanyID)
	w.id("g.office_id", f.OfficeID)
	w.str("g.name", f.Name)
	w.in("g.id", `SELECT group_id FROM group_members WHERE host_id = ?`, f.HostID)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+groupColumns+`
		FROM inventory_groups g
		JOIN companies c ON c.id = g.company_id
		JOIN offices o ON o.id = g.office_id`+w.String()+`
		ORDER BY g.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		var row groupRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// Hosts returns the hosts matching f, ordered by ID, with their group
// membership loaded
func (s *Store) Hosts(ctx context.Context, f repository.HostFilter) ([]*domain.Host, error) {
	hosts, err := s.queryHosts(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return hosts, nil
	}

	if err := s.loadMembership(ctx, hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

func (s *Store) queryHosts(ctx context.Context, f repository.HostFilter) ([]*domain.Host, error) {
	var w where
	w.id("h.id", f.ID)
	w.id("h.company_id", f.CompanyID)
	w.id("h.office_id", f.OfficeID)
	w.str("h.name", f.Name)
	w.in("h.id", `SELECT host_id FROM group_members WHERE group_id = ?`, f.GroupID)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+hostColumns+`
		FROM hosts h
		JOIN companies c ON c.id = h.company_id
		JOIN offices o ON o.id = h.office_id`+w.String()+`
		ORDER BY h.id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hosts: %w", err)
	}
	defer rows.Close()

	var hosts []*domain.Host
	for rows.Next() {
		var row hostRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan host: %w", err)
		}
		hosts = append(hosts, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hosts: %w", err)
	}

	return hosts, nil
}

// loadMembership fills Host.Groups for every host in one query
func (s *Store) loadMembership(ctx context.Context, hosts []*domain.Host) error {
	byID := make(map[int64]*domain.Host, len(hosts))
	args := make([]interface{}, 0, len(hosts))
	for _, h := range hosts {
		byID[h.ID] = h
		args = append(args, h.ID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.host_id, `+groupColumns+`
		FROM group_members m
		JOIN inventory_groups g ON g.id = m.group_id
		JOIN companies c ON c.id = g.company_id
		JOIN offices o ON o.id = g.office_id
		WHERE m.host_id IN (`+placeholders(len(args))+`)
		ORDER BY m.host_id, g.id`, args...)
	if err != nil {
		return fmt.Errorf("failed to query host groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			hostID int64
			row    groupRow
		)
		if err := rows.Scan(append([]interface{}{&hostID}, row.scanArgs()...)...); err != nil {
			return fmt.Errorf("failed to scan host group: %w", err)
		}
		if h := byID[hostID]; h != nil {
			h.Groups = append(h.Groups, row.toDomain())
		}
	}

	return rows.Err()
}
