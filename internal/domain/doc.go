// Package domain defines the entity model for the inventory hierarchy.
//
// The hierarchy has four levels:
//
//	Company -> Office -> Group
//	                  -> Host
//
// A Company owns Offices. Groups and Hosts belong to exactly one Company
// and one Office of that Company. Hosts are members of one or more Groups
// of their Office through a pure join (the association); the edge carries
// no attributes of its own.
//
// # Constraints
//
// Uniqueness, required fields and references are declared here but enforced
// by the storage engine when a session commits:
//
//   - Company.Name is globally unique
//   - (Office.Name, CompanyID) is unique
//   - (Group.Name, CompanyID, OfficeID) is unique
//   - (Host.Name, CompanyID, OfficeID) is unique
//
// # Errors
//
// Error is the tagged failure returned by the inventory manager. Its Kind
// separates NotFound, AlreadyExists, MissingArgument and ConstraintViolation
// so callers can match the cause with errors.Is against the sentinels.
//
// # Samba records
//
// SambaGroup, SambaUser, SambaConfig and SambaShare are carried in the model
// and in the schema. No manager operation reads or writes them.
package domain
