// Package service implements the inventory manager.
//
// Manager is the facade callers use to build and query the hierarchy. It
// owns one repository.Session for its whole lifetime and releases it on
// Close.
//
// # Validate, then act
//
// Every mutating operation first resolves the parents it references and
// checks uniqueness with read queries, then stages the change and commits.
// A failed commit is rolled back. Failures are logged and returned as a
// *domain.Error. The entity result is nil on every failure, so callers that
// only test for nil keep working, and callers that care can match the
// cause with errors.Is.
//
// # Dump
//
// DumpHostsByGroup flattens the hierarchy into "{company}_{office}_{group}"
// keys mapping to member host names, for the codec exporters.
//
// # Events
//
// Committed mutations are published on an optional EventBus.
package service
