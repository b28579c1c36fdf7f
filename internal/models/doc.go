// Package models defines domain entities for the ludex board-game catalog.
//
// The package contains two categories of types:
//
// 1. Migration-source shapes, read-only during consolidation:
//   - [LegacyGame] : one row of the flat pre-split games table, carrying both
//     shared metadata and per-user tracking fields
//
// 2. Consolidated entities, written by the migration and by normal operation:
//   - [SharedGameData] : the subset of metadata that generalizes across users
//   - [CatalogGame] : one deduplicated catalog row
//   - [LibraryGame] : one (user, catalog game) pairing with personal tracking data
//   - [User] : user accounts referenced by library rows
//
// Entities that are persisted carry a Validate method checked before insert.
package models
