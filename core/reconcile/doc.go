// Package reconcile converges a local mirror onto a paginated remote source.
//
// The engine is generic over the record type. Callers describe their records
// with an Adapter (identity, content fingerprint, sync stamp) and provide a
// Source and a Store.
//
// # Pass
//
// A pass fetches page 1 to learn the page count, then fetches the remaining
// pages concurrently with a bounded errgroup. Any page failure aborts the pass
// with a SyncSourceUnavailable error and nothing is written.
//
// Remote records are indexed by key (last occurrence wins, duplicates are
// logged), local records are loaded in full, and the two are diffed:
//
//	remote only          -> insert (bulk, per-record fallback)
//	both, fingerprint != -> update (per record, bounded)
//	both, fingerprint == -> touch  (sync date only, chunked)
//	local only           -> delete (per record, bounded)
//
// Per-record write failures are logged, counted and skipped.
//
// # Runner
//
// Runner guards the engine so only one pass runs at a time. Run collapses
// concurrent callers with singleflight and re-checks whether the pass is still
// needed inside the guarded section. Trigger starts a detached background pass
// guarded by an atomic flag.
//
// # Fingerprints
//
// Fingerprint hashes the canonical JSON form of a record (sorted keys,
// excluded bookkeeping fields) with SHA-256.
package reconcile
