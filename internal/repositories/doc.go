// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository wraps a *sql.DB with hand-written SQL and purpose-specific
// methods; there is no generic CRUD surface because the consolidation engine
// touches each table differently (the legacy table is read-only, the catalog
// is insert-only, library rows are insert-or-skip).
//
// Key Implementations:
//   - [UserRepository] : user accounts with email-based lookups and soft deletes
//   - [LegacyGameRepository] : read-only access to the flat pre-split games table,
//     including source-shape detection for migration preflight
//   - [CatalogGameRepository] : the shared deduplicated catalog, unique by
//     normalized title at the schema level
//   - [LibraryGameRepository] : (user, game) join rows with an idempotent
//     create that reports pre-existing pairs as [shared.ErrAlreadyExists]
//
// Sequence numbers provide stable, human-readable ordering independent of
// UUIDs and creation timestamps. The [NextSequence] function atomically
// increments per-table sequence counters in dedicated sequence tables.
package repositories
