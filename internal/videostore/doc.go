// Package videostore persists video records in SQLite. The record is the
// single point of truth for which artifacts exist; pipeline stages mutate it
// through read-modify-write sequences guarded by the pipeline's per-video
// locks.
package videostore
