package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"inventory/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull converts string to sql.NullString. Empty strings become NULL
// so NOT NULL columns reject missing names.
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// idToNull converts a row ID to sql.NullInt64. Zero (unsaved) becomes NULL.
func idToNull(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}

// ============================================================================
// Constraint Errors
// ============================================================================

// isConstraint reports whether err is an SQLite constraint failure
// (UNIQUE, NOT NULL, FOREIGN KEY, PRIMARY KEY, CHECK)
func isConstraint(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// translate tags store errors for the manager. Errors that are already
// tagged pass through unchanged.
func translate(e domain.Entity, err error) error {
	if domain.KindOf(err) != "" {
		return err
	}
	if isConstraint(err) {
		return domain.ConstraintViolation(e.EntityType(), e.Key(), err)
	}
	return fmt.Errorf("%s %q: %w", e.EntityType(), e.Key(), err)
}

// ============================================================================
// Query Building
// ============================================================================

// where accumulates AND-ed equality conditions, skipping unset ones
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) id(col string, v int64) {
	if v != 0 {
		w.clauses = append(w.clauses, col+" = ?")
		w.args = append(w.args, v)
	}
}

func (w *where) str(col string, v string) {
	if v != "" {
		w.clauses = append(w.clauses, col+" = ?")
		w.args = append(w.args, v)
	}
}

func (w *where) in(col, subquery string, v int64) {
	if v != 0 {
		w.clauses = append(w.clauses, col+" IN ("+subquery+")")
		w.args = append(w.args, v)
	}
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// placeholders returns "?, ?, ?" for n arguments
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// ============================================================================
// Row Scanners
// ============================================================================
//
// CRITICAL: Column order must match between the *Columns constant and the
// matching scanArgs() slice, and every SELECT must use the constant.

// companyColumns returns the SELECT column list for company queries
const companyColumns = `c.id, c.name`

type companyRow struct {
	ID   int64
	Name sql.NullString
}

func (r *companyRow) scanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name}
}

func (r *companyRow) toDomain() *domain.Company {
	return &domain.Company{ID: r.ID, Name: nullToString(r.Name)}
}

// officeColumns returns the SELECT column list for office queries
const officeColumns = `o.id, o.name, o.company_id, c.name`

type officeRow struct {
	ID          int64
	Name        sql.NullString
	CompanyID   int64
	CompanyName sql.NullString
}

func (r *officeRow) scanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.CompanyID, &r.CompanyName}
}

func (r *officeRow) toDomain() *domain.Office {
	return &domain.Office{
		ID:          r.ID,
		Name:        nullToString(r.Name),
		CompanyID:   r.CompanyID,
		CompanyName: nullToString(r.CompanyName),
	}
}

// groupColumns returns the SELECT column list for group queries
const groupColumns = `g.id, g.name, g.company_id, c.name, g.office_id, o.name`

type groupRow struct {
	ID          int64
	Name        sql.NullString
	CompanyID   int64
	CompanyName sql.NullString
	OfficeID    int64
	OfficeName  sql.NullString
}

func (r *groupRow) scanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.CompanyID, &r.CompanyName, &r.OfficeID, &r.OfficeName}
}

func (r *groupRow) toDomain() *domain.Group {
	return &domain.Group{
		ID:          r.ID,
		Name:        nullToString(r.Name),
		CompanyID:   r.CompanyID,
		CompanyName: nullToString(r.CompanyName),
		OfficeID:    r.OfficeID,
		OfficeName:  nullToString(r.OfficeName),
	}
}

// hostColumns returns the SELECT column list for host queries
const hostColumns = `h.id, h.name, h.company_id, c.name, h.office_id, o.name`

type hostRow struct {
	ID          int64
	Name        sql.NullString
	CompanyID   int64
	CompanyName sql.NullString
	OfficeID    int64
	OfficeName  sql.NullString
}

func (r *hostRow) scanArgs() []interface{} {
	return []interface{}{&r.ID, &r.Name, &r.CompanyID, &r.CompanyName, &r.OfficeID, &r.OfficeName}
}

func (r *hostRow) toDomain() *domain.Host {
	return &domain.Host{
		ID:          r.ID,
		Name:        nullToString(r.Name),
		CompanyID:   r.CompanyID,
		CompanyName: nullToString(r.CompanyName),
		OfficeID:    r.OfficeID,
		OfficeName:  nullToString(r.OfficeName),
		Groups:      []*domain.Group{},
	}
}
