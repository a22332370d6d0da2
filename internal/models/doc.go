// Package models defines the core domain models for evenup.
//
// # Models
//
//   - User: registered account, used for authentication and audit fields
//   - Group: a roster of people who share expenses
//   - Expense: one shared purchase with a split rule (equal or custom)
//   - Settlement: a recorded real-world payment between two members
//
// Group members and expense participants are identified by name strings
// unique within their group. Users exist for login only; linking members to
// user accounts is a possible later step and the string-based roster keeps
// that transition non-breaking.
//
// # Design Principles
//
//  1. No reference cycles: relationships use ID strings, never pointers.
//  2. Derived data (balances, transfer plans) is never stored; it is
//     recomputed by internal/calculator from these records on demand.
//  3. Timestamps are Unix seconds, IDs are UUID strings assigned by the
//     storage layer.
package models
