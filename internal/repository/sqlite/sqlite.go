package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"inventory/internal/domain"
	"inventory/internal/repository"

	_ "modernc.org/sqlite"
)

// Store implements repository.Session using SQLite
type Store struct {
	db      *sql.DB
	log     *zap.Logger
	pending []pendingOp
}

var _ repository.Session = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for rollback and commit diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New opens the SQLite database at dbPath and creates the schema if needed.
// Use ":memory:" for a throwaway database.
func New(dbPath string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: the session is the only writer, and an in-memory
	// database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	store := newStore(db, opts...)
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func newStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func dsn(dbPath string) string {
	if dbPath == ":memory:" {
		return "file::memory:?_pragma=foreign_keys(1)"
	}
	return "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS offices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		company_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT company_office_uc UNIQUE (name, company_id),
		UNIQUE (id, company_id),
		FOREIGN KEY (company_id) REFERENCES companies(id)
	);

	CREATE TABLE IF NOT EXISTS inventory_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		company_id INTEGER NOT NULL,
		office_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT company_office_group_uc UNIQUE (name, company_id, office_id),
		UNIQUE (id, office_id),
		FOREIGN KEY (company_id) REFERENCES companies(id),
		FOREIGN KEY (office_id, company_id) REFERENCES offices(id, company_id)
	);

	CREATE TABLE IF NOT EXISTS hosts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		company_id INTEGER NOT NULL,
		office_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT company_office_host_uc UNIQUE (name, company_id, office_id),
		UNIQUE (id, office_id),
		FOREIGN KEY (company_id) REFERENCES companies(id),
		FOREIGN KEY (office_id, company_id) REFERENCES offices(id, company_id)
	);

	CREATE TABLE IF NOT EXISTS group_members (
		host_id INTEGER NOT NULL,
		group_id INTEGER NOT NULL,
		office_id INTEGER NOT NULL,
		PRIMARY KEY (host_id, group_id),
		FOREIGN KEY (host_id, office_id) REFERENCES hosts(id, office_id) ON DELETE CASCADE,
		FOREIGN KEY (group_id, office_id) REFERENCES inventory_groups(id, office_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS samba_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		company_id INTEGER NOT NULL REFERENCES companies(id),
		office_id INTEGER NOT NULL REFERENCES offices(id),
		gid INTEGER NOT NULL UNIQUE,
		CONSTRAINT company_samba_group_uc UNIQUE (name, company_id, office_id)
	);

	CREATE TABLE IF NOT EXISTS samba_users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		smbpasswd TEXT NOT NULL,
		uid INTEGER NOT NULL UNIQUE,
		"groups" TEXT NOT NULL,
		company_id INTEGER NOT NULL REFERENCES companies(id),
		office_id INTEGER NOT NULL REFERENCES offices(id),
		CONSTRAINT company_samba_user_uc UNIQUE (username, company_id, office_id)
	);

	CREATE TABLE IF NOT EXISTS samba_configs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id INTEGER NOT NULL REFERENCES companies(id),
		user TEXT NOT NULL,
		"group" TEXT NOT NULL,
		interfaces TEXT NOT NULL,
		hosts_allow TEXT NOT NULL,
		local_master TEXT NOT NULL,
		preferred_master TEXT NOT NULL,
		socket_options TEXT
	);

	CREATE TABLE IF NOT EXISTS samba_shares (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id INTEGER NOT NULL REFERENCES companies(id),
		name TEXT NOT NULL UNIQUE,
		label TEXT NOT NULL UNIQUE,
		"group" TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL UNIQUE
	);

	CREATE INDEX IF NOT EXISTS idx_offices_company ON offices(company_id);
	CREATE INDEX IF NOT EXISTS idx_groups_office ON inventory_groups(office_id);
	CREATE INDEX IF NOT EXISTS idx_hosts_office ON hosts(office_id);
	CREATE INDEX IF NOT EXISTS idx_group_members_group ON group_members(group_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// ============================================================================
// Unit of Work
// ============================================================================

type opKind int

const (
	opAdd opKind = iota
	opDelete
)

func (k opKind) String() string {
	if k == opDelete {
		return "delete"
	}
	return "add"
}

type pendingOp struct {
	kind   opKind
	entity domain.Entity
}

// Add stages e for insertion on the next Commit
func (s *Store) Add(e domain.Entity) {
	s.pending = append(s.pending, pendingOp{kind: opAdd, entity: e})
}

// Delete stages e for removal on the next Commit. e must have been loaded
// from the store (non-zero ID).
func (s *Store) Delete(e domain.Entity) {
	s.pending = append(s.pending, pendingOp{kind: opDelete, entity: e})
}

// Commit applies every staged change in a single transaction. Generated IDs
// are copied into added entities only once the transaction has committed.
func (s *Store) Commit(ctx context.Context) error {
	pending := s.pending
	s.pending = nil

	if len(pending) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var assign []func()
	for _, op := range pending {
		fn, err := s.apply(ctx, tx, op)
		if err != nil {
			s.log.Debug("commit aborted",
				zap.String("op", op.kind.String()),
				zap.String("entity", string(op.entity.EntityType())),
				zap.String("name", op.entity.Key()),
				zap.Int("discarded", len(pending)),
				zap.Error(err),
			)
			return translate(op.entity, err)
		}
		if fn != nil {
			assign = append(assign, fn)
		}
	}

	if err := tx.Commit(); err != nil {
		return translate(pending[len(pending)-1].entity, fmt.Errorf("failed to commit transaction: %w", err))
	}

	for _, fn := range assign {
		fn()
	}
	return nil
}

// Rollback discards staged changes
func (s *Store) Rollback() {
	if len(s.pending) > 0 {
		s.log.Debug("rollback", zap.Int("discarded", len(s.pending)))
	}
	s.pending = nil
}

// apply executes one staged change inside tx. The returned func, if any,
// publishes generated IDs after commit.
func (s *Store) apply(ctx context.Context, tx *sql.Tx, op pendingOp) (func(), error) {
	if op.kind == opDelete {
		return nil, s.applyDelete(ctx, tx, op.entity)
	}

	switch e := op.entity.(type) {
	case *domain.Company:
		id, err := insert(ctx, tx, `INSERT INTO companies (name) VALUES (?)`, stringToNull(e.Name))
		if err != nil {
			return nil, err
		}
		return func() { e.ID = id }, nil

	case *domain.Office:
		id, err := insert(ctx, tx, `INSERT INTO offices (name, company_id) VALUES (?, ?)`,
			stringToNull(e.Name), idToNull(e.CompanyID))
		if err != nil {
			return nil, err
		}
		return func() { e.ID = id }, nil

	case *domain.Group:
		id, err := insert(ctx, tx, `INSERT INTO inventory_groups (name, company_id, office_id) VALUES (?, ?, ?)`,
			stringToNull(e.Name), idToNull(e.CompanyID), idToNull(e.OfficeID))
		if err != nil {
			return nil, err
		}
		return func() { e.ID = id }, nil

	case *domain.Host:
		id, err := insert(ctx, tx, `INSERT INTO hosts (name, company_id, office_id) VALUES (?, ?, ?)`,
			stringToNull(e.Name), idToNull(e.CompanyID), idToNull(e.OfficeID))
		if err != nil {
			return nil, err
		}
		if err := insertMembers(ctx, tx, id, e.OfficeID, e.Groups); err != nil {
			return nil, err
		}
		return func() { e.ID = id }, nil

	default:
		return nil, fmt.Errorf("unsupported entity type %T", op.entity)
	}
}

func (s *Store) applyDelete(ctx context.Context, tx *sql.Tx, e domain.Entity) error {
	var (
		table string
		id    int64
	)

	switch e := e.(type) {
	case *domain.Company:
		table, id = "companies", e.ID
	case *domain.Office:
		table, id = "offices", e.ID
	case *domain.Group:
		table, id = "inventory_groups", e.ID
	case *domain.Host:
		table, id = "hosts", e.ID
	default:
		return fmt.Errorf("unsupported entity type %T", e)
	}

	if id == 0 {
		return fmt.Errorf("cannot delete unsaved %s %q", e.EntityType(), e.Key())
	}

	// Membership rows go with the group or host by ON DELETE CASCADE;
	// parents with children are refused by their foreign keys.
	res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound(e.EntityType(), e.Key())
	}
	return nil
}

func insert(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int64, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// insertMembers links a host to its groups. The office column ties both
// sides of the link to the host's office.
func insertMembers(ctx context.Context, tx *sql.Tx, hostID, officeID int64, groups []*domain.Group) error {
	if len(groups) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO group_members (host_id, group_id, office_id) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range groups {
		if _, err := stmt.ExecContext(ctx, hostID, idToNull(g.ID), officeID); err != nil {
			return fmt.Errorf("failed to add host %d to group %s: %w", hostID, g.Name, err)
		}
	}
	return nil
}

// Close closes the database connection, discarding anything still staged
func (s *Store) Close() error {
	s.Rollback()
	return s.db.Close()
}
