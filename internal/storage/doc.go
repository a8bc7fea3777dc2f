// Package storage provides the key-value store that carries the blocked
// analysis from the inspection pipeline to the warning page.
//
// Store is the injected abstraction. Two implementations exist:
//   - MemoryStore keeps values in process memory and is used by tests and
//     by single-process runs.
//   - SQLiteStore persists values in a SQLite file (modernc.org/sqlite), so
//     the slot survives redirects and is visible to other SafeLink processes
//     sharing the same data directory.
//
// BlockedSlot is the typed accessor for the single well-known key
// model.BlockedAnalysisKey.
package storage
