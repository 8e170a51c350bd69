package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/domain"
	"inventory/internal/repository"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestStore creates an in-memory SQLite store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err, "failed to create test store")

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// commit stages e and commits, failing the test on error
func commit(t *testing.T, s *Store, e domain.Entity) {
	t.Helper()
	s.Add(e)
	require.NoError(t, s.Commit(context.Background()))
}

type fixture struct {
	acme   *domain.Company
	austin *domain.Office
	it     *domain.Group
	dev    *domain.Group
}

// seed creates Acme/Austin with groups IT and Dev
func seed(t *testing.T, s *Store) fixture {
	t.Helper()
	var f fixture

	f.acme = domain.NewCompany("Acme")
	commit(t, s, f.acme)

	f.austin = domain.NewOffice("Austin", f.acme)
	commit(t, s, f.austin)

	f.it = domain.NewGroup("IT", f.austin)
	f.dev = domain.NewGroup("Dev", f.austin)
	s.Add(f.it)
	s.Add(f.dev)
	require.NoError(t, s.Commit(context.Background()))

	return f
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullToString(t *testing.T) {
	tests := []struct {
		name     string
		input    sql.NullString
		expected string
	}{
		{"valid string", sql.NullString{String: "test", Valid: true}, "test"},
		{"invalid string", sql.NullString{String: "test", Valid: false}, ""},
		{"empty valid string", sql.NullString{String: "", Valid: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nullToString(tt.input))
		})
	}
}

func TestStringToNull(t *testing.T) {
	assert.Equal(t, sql.NullString{String: "Acme", Valid: true}, stringToNull("Acme"))
	assert.Equal(t, sql.NullString{}, stringToNull(""))
}

func TestIDToNull(t *testing.T) {
	assert.Equal(t, sql.NullInt64{Int64: 4, Valid: true}, idToNull(4))
	assert.Equal(t, sql.NullInt64{}, idToNull(0))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.id("o.company_id", 0)
	w.str("o.name", "")
	assert.Equal(t, "", w.String())

	w.id("o.company_id", 3)
	w.str("o.name", "Austin")
	w.in("o.id", "SELECT 1 WHERE ? > 0", 9)
	assert.Equal(t, " WHERE o.company_id = ? AND o.name = ? AND o.id IN (SELECT 1 WHERE ? > 0)", w.String())
	assert.Equal(t, []interface{}{int64(3), "Austin", int64(9)}, w.args)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)", dsn(":memory:"))
	assert.Contains(t, dsn("/tmp/inv.db"), "file:/tmp/inv.db?_pragma=foreign_keys(1)")
	assert.Contains(t, dsn("/tmp/inv.db"), "journal_mode(WAL)")
}

// ============================================================================
// Schema Tests
// ============================================================================

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	first, err := New(path)
	require.NoError(t, err)
	commit(t, first, domain.NewCompany("Acme"))
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	companies, err := second.Companies(context.Background(), repository.CompanyFilter{})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].Name)
}

func TestSambaTablesCreated(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"samba_groups", "samba_users", "samba_configs", "samba_shares"} {
		var name string
		err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

// ============================================================================
// Unit of Work Tests
// ============================================================================

func TestCommitAssignsIDs(t *testing.T) {
	s := newTestStore(t)
	f := seed(t, s)

	assert.NotZero(t, f.acme.ID)
	assert.NotZero(t, f.austin.ID)
	assert.NotZero(t, f.it.ID)
	assert.NotEqual(t, f.it.ID, f.dev.ID)
}

func TestCommitWithoutChanges(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Commit(context.Background()))
}

func TestRollbackDiscardsStaged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acme := domain.NewCompany("Acme")
	s.Add(acme)
	s.Rollback()
	require.NoError(t, s.Commit(ctx))

	assert.Zero(t, acme.ID)
	assert.Equal(t, 0, countRows(t, s, "companies"))
}

func TestCommitIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := domain.NewCompany("Acme")
	dup := domain.NewCompany("Acme")
	s.Add(first)
	s.Add(dup)

	err := s.Commit(ctx)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, first.ID, "IDs must not leak from a failed commit")
	assert.Equal(t, 0, countRows(t, s, "companies"))

	// Staged changes were discarded with the failed commit
	require.NoError(t, s.Commit(ctx))
	assert.Equal(t, 0, countRows(t, s, "companies"))
}

func TestConstraintViolations(t *testing.T) {
	tests := []struct {
		name   string
		entity func(f fixture) domain.Entity
	}{
		{"duplicate company", func(f fixture) domain.Entity { return domain.NewCompany("Acme") }},
		{"empty company name", func(f fixture) domain.Entity { return domain.NewCompany("") }},
		{"duplicate office", func(f fixture) domain.Entity { return domain.NewOffice("Austin", f.acme) }},
		{"office without company", func(f fixture) domain.Entity {
			return &domain.Office{Name: "Nowhere", CompanyID: 999}
		}},
		{"duplicate group", func(f fixture) domain.Entity { return domain.NewGroup("IT", f.austin) }},
		{"group office from another company", func(f fixture) domain.Entity {
			return &domain.Group{Name: "Ops", CompanyID: 999, OfficeID: f.austin.ID}
		}},
		{"host in unsaved group", func(f fixture) domain.Entity {
			return domain.NewHost("coyote", f.austin, []*domain.Group{{Name: "ghost"}})
		}},
		{"host in a group twice", func(f fixture) domain.Entity {
			return domain.NewHost("coyote", f.austin, []*domain.Group{f.it, f.it})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			f := seed(t, s)

			s.Add(tt.entity(f))
			err := s.Commit(context.Background())
			assert.ErrorIs(t, err, domain.ErrConstraintViolation)
			assert.Equal(t, domain.KindConstraintViolation, domain.KindOf(err))
		})
	}
}

func TestDeleteUnsaved(t *testing.T) {
	s := newTestStore(t)

	s.Delete(domain.NewCompany("Acme"))
	err := s.Commit(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.Kind(""), domain.KindOf(err))
}

func TestDeleteMissing(t *testing.T) {
	s := newTestStore(t)

	s.Delete(&domain.Company{ID: 42, Name: "Ghost"})
	err := s.Commit(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ============================================================================
// Lookup Tests
// ============================================================================

func TestCompanies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seed(t, s)
	commit(t, s, domain.NewCompany("RabbitWorks"))

	all, err := s.Companies(ctx, repository.CompanyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].Name)
	assert.Equal(t, "RabbitWorks", all[1].Name)

	byName, err := repository.First(s.Companies(ctx, repository.CompanyFilter{Name: "Acme"}))
	require.NoError(t, err)
	assert.Equal(t, f.acme, byName)

	missing, err := repository.First(s.Companies(ctx, repository.CompanyFilter{Name: "LocoWeed"}))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOffices(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seed(t, s)

	rabbit := domain.NewCompany("RabbitWorks")
	commit(t, s, rabbit)
	hole := domain.NewOffice("HoleCity", rabbit)
	commit(t, s, hole)

	acmeOffices, err := s.Offices(ctx, repository.OfficeFilter{CompanyID: f.acme.ID})
	require.NoError(t, err)
	assert.Equal(t, []*domain.Office{f.austin}, acmeOffices)

	all, err := s.Offices(ctx, repository.OfficeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.Offices(ctx, repository.OfficeFilter{CompanyID: rabbit.ID, Name: "Austin"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHostMembershipRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seed(t, s)

	roadrunner := domain.NewHost("roadrunner", f.austin, []*domain.Group{f.it, f.dev})
	commit(t, s, roadrunner)
	coyote := domain.NewHost("coyote", f.austin, []*domain.Group{f.dev})
	commit(t, s, coyote)

	got, err := repository.First(s.Hosts(ctx, repository.HostFilter{OfficeID: f.austin.ID, Name: "roadrunner"}))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, roadrunner, got)
	assert.ElementsMatch(t, []string{"IT", "Dev"}, got.GroupNames())

	devHosts, err := s.Hosts(ctx, repository.HostFilter{GroupID: f.dev.ID})
	require.NoError(t, err)
	require.Len(t, devHosts, 2)
	assert.Equal(t, "roadrunner", devHosts[0].Name)
	assert.Equal(t, "coyote", devHosts[1].Name)

	coyoteGroups, err := s.Groups(ctx, repository.GroupFilter{HostID: coyote.ID})
	require.NoError(t, err)
	assert.Equal(t, []*domain.Group{f.dev}, coyoteGroups)
}

func TestHostsEmpty(t *testing.T) {
	s := newTestStore(t)

	hosts, err := s.Hosts(context.Background(), repository.HostFilter{Name: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

// ============================================================================
// Delete Policy Tests
// ============================================================================

func TestDeleteRestrictsParents(t *testing.T) {
	tests := []struct {
		name   string
		target func(f fixture) domain.Entity
	}{
		{"company with offices", func(f fixture) domain.Entity { return f.acme }},
		{"office with groups", func(f fixture) domain.Entity { return f.austin }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			f := seed(t, s)

			s.Delete(tt.target(f))
			err := s.Commit(context.Background())
			assert.ErrorIs(t, err, domain.ErrConstraintViolation)
			assert.Equal(t, 1, countRows(t, s, "companies"))
			assert.Equal(t, 1, countRows(t, s, "offices"))
		})
	}
}

func TestDeleteGroupCascadesMembership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := seed(t, s)

	host := domain.NewHost("roadrunner", f.austin, []*domain.Group{f.it, f.dev})
	commit(t, s, host)
	require.Equal(t, 2, countRows(t, s, "group_members"))

	s.Delete(f.it)
	require.NoError(t, s.Commit(ctx))

	got, err := repository.First(s.Hosts(ctx, repository.HostFilter{ID: host.ID}))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"Dev"}, got.GroupNames())
	assert.Equal(t, 1, countRows(t, s, "group_members"))
}

func TestDeleteHostCascadesMembership(t *testing.T) {
	s := newTestStore(t)
	f := seed(t, s)

	host := domain.NewHost("roadrunner", f.austin, []*domain.Group{f.it})
	commit(t, s, host)

	s.Delete(host)
	require.NoError(t, s.Commit(context.Background()))
	assert.Equal(t, 0, countRows(t, s, "hosts"))
	assert.Equal(t, 0, countRows(t, s, "group_members"))
	assert.Equal(t, 2, countRows(t, s, "inventory_groups"))
}

func TestMembershipRequiresHostOffice(t *testing.T) {
	s := newTestStore(t)
	f := seed(t, s)

	boston := domain.NewOffice("Boston", f.acme)
	commit(t, s, boston)
	ops := domain.NewGroup("Ops", boston)
	commit(t, s, ops)

	host := domain.NewHost("coyote", f.austin, []*domain.Group{f.it, ops})
	s.Add(host)
	err := s.Commit(context.Background())
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, host.ID)
	assert.Equal(t, 0, countRows(t, s, "hosts"))
	assert.Equal(t, 0, countRows(t, s, "group_members"))
}

// ============================================================================
// Transaction Failure Tests
// ============================================================================

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newStore(db), mock
}

func TestCommitFailureLeavesIDsUnset(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO companies").
		WithArgs("Acme").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk I/O error"))

	acme := domain.NewCompany("Acme")
	s.Add(acme)
	err := s.Commit(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NotErrorIs(t, err, domain.ErrConstraintViolation)
	assert.Zero(t, acme.ID)
	assert.Empty(t, s.pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO companies").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO companies").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	s.Add(domain.NewCompany("Acme"))
	s.Add(domain.NewCompany("RabbitWorks"))
	err := s.Commit(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `company "RabbitWorks"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	s.Add(domain.NewCompany("Acme"))
	err := s.Commit(context.Background())

	require.Error(t, err)
	assert.Empty(t, s.pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}
