// Package state implements the per-entity domain stores.
//
// # Overview
//
// Every entity type in the console gets one Store: an in-memory bucket of
// the last known server state plus loading/error/success flags and
// pagination. Stores are the only shared mutable state in the process and
// are mutated exclusively through Begin/Commit; views read snapshots.
//
// # Event model
//
// State transitions are expressed as a closed set of event types applied
// by a pure reducer. There is no string-tagged dispatch: an event that the
// reducer does not know about cannot be constructed.
//
// # Staleness policy
//
// Overlapping dispatches against one store are resolved by sequence
// number: Begin hands out a sequence, and Commit discards any settle that
// is older than the newest outstanding dispatch. "Last dispatch wins" is
// therefore an explicit, tested policy.
package state
