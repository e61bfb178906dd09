// Package store persists per-security chip data as flat CSV files.
//
// Layout, one tree per market:
//
//	<listed_dir>/<security id>/<YYYY-MM-DD>.csv   write-once daily snapshot
//	<listed_dir>/<security id>/<security id>.csv  accumulated history
//
// The snapshot file is the system's idempotency guard: once it exists for a
// (security, day) pair, that pair is never re-derived. The history file is
// rewritten atomically on every accumulation, deduplicated by day with the
// last write winning, and kept sorted ascending by day. A per-security lock
// serializes history rewrites so concurrent day-tasks never interleave a
// read-modify-write.
//
// Files are UTF-8 with a BOM and localized headers, matching what the
// publishers themselves ship and what the downstream spreadsheets expect.
package store
