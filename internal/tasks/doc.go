// Package tasks implements the catalog consolidation engine and shelf export
// operations.
//
// The core abstraction is [CatalogEngine], which drives the migration of the
// flat per-user games table into a shared deduplicated catalog plus per-user
// library rows. A run is strictly sequential: the resolver's check-then-act
// lookup against the store has no transactional guard, so a single writer is
// what keeps the one-catalog-row-per-title invariant correct. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
//
// Pipeline for one run:
//
//	preflight -> fetch legacy rows -> group by normalized title ->
//	per group: pick the most complete record, resolve or create the catalog
//	entry, attach every record's user to it -> fold results into a summary
//
// Failures are isolated: a catalog create failure fails its group, a library
// insert failure fails its record, and the run always completes with one
// [MigrationResult] per legacy row. Re-running is the retry mechanism; the
// engine performs none of its own.
package tasks
