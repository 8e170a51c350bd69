// Package repository defines the data access interface for the inventory.
//
// Session is the unit of work the inventory manager talks to. It offers
// typed lookups that take a filter as their predicate, plus staged Add and
// Delete that only reach the store on Commit. The sqlite subpackage is the
// implementation.
//
// # Constraints
//
// Uniqueness, NOT NULL and foreign-key constraints are declared in the
// schema and checked by the store during Commit. A failed Commit discards
// everything staged, so a session is always clean after it returns.
package repository
