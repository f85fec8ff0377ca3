// Package types defines the Store interface, the entity types of the
// save4dream progression engine, and the standard errors shared by the
// engine, the storage backends, and the CLI.
//
// Entity methods mutate the struct in memory and enforce the entity's own
// invariants (balances never negative, one-way unlocks, append-only purchase
// log). Callers persist changes through a Store.
package types
