// ABOUTME: Generic domain store with sequence-numbered dispatch settlement
// ABOUTME: Single-writer discipline: mutation only through Begin/Commit, views read snapshots

package state

import (
	"slices"
	"sync"
)

// Pagination mirrors the backend's page envelope. It is replaced wholesale
// by the paginated fetch that produced it and is not adjusted by later
// mutations until a re-fetch.
type Pagination struct {
	Current    int `json:"currentPage"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}

// Snapshot is one store's observable state. Err and Success are only
// meaningful to a view while Loading is false.
type Snapshot[T any] struct {
	Items    []T
	Selected *T
	Loading  bool
	Err      string
	Success  bool
	Page     Pagination
}

// Event is the closed set of store transitions. The event method is
// unexported so no event type can exist outside this package.
type Event[T any] interface{ event() }

// ListLoaded replaces Items (and Page, when the fetch was paginated).
type ListLoaded[T any] struct {
	Items []T
	Page  *Pagination
}

// ItemLoaded sets Selected from a fetch-by-id.
type ItemLoaded[T any] struct{ Item T }

// ItemCreated appends the server's echo of a created record.
type ItemCreated[T any] struct{ Item T }

// ItemUpdated replaces the record matching the echo's identifier.
type ItemUpdated[T any] struct{ Item T }

// ItemDeleted removes the record with the given identifier.
type ItemDeleted[T any] struct{ ID string }

// SelectedUpdated replaces Selected with a mutation's echo and marks
// success. Used where the "current" record is the mutation target
// (profile, open attendance session).
type SelectedUpdated[T any] struct{ Item T }

// Done settles a mutation that carries no record payload (logout, OTP
// sends and the like).
type Done[T any] struct{}

// Cleared resets the store to its zero state.
type Cleared[T any] struct{}

// Failed records the operation's error message.
type Failed[T any] struct{ Message string }

func (ListLoaded[T]) event()      {}
func (ItemLoaded[T]) event()      {}
func (ItemCreated[T]) event()     {}
func (ItemUpdated[T]) event()     {}
func (ItemDeleted[T]) event()     {}
func (SelectedUpdated[T]) event() {}
func (Done[T]) event()            {}
func (Cleared[T]) event()         {}
func (Failed[T]) event()          {}

// Store holds the last known server state for one entity type.
type Store[T any] struct {
	mu   sync.Mutex
	snap Snapshot[T]
	seq  uint64
	id   func(T) string
}

// New creates a store. id extracts a record's server-assigned identifier.
func New[T any](id func(T) string) *Store[T] {
	return &Store[T]{id: id}
}

// Begin marks the store loading for a new dispatch and returns the
// dispatch's sequence number. Entering loading clears both Err and
// Success (the uniform reset convention).
func (s *Store[T]) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.snap.Loading = true
	s.snap.Err = ""
	s.snap.Success = false
	return s.seq
}

// Commit settles the dispatch identified by seq by applying ev. If a newer
// dispatch has begun since, the settle is stale: nothing is applied and
// Commit reports false. Loading is false after any non-stale settle.
func (s *Store[T]) Commit(seq uint64, ev Event[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	s.snap = reduce(s.snap, ev, s.id)
	return true
}

// State returns a snapshot copy safe for the caller to hold across
// further dispatches.
func (s *Store[T]) State() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	snap.Items = slices.Clone(s.snap.Items)
	if s.snap.Selected != nil {
		sel := *s.snap.Selected
		snap.Selected = &sel
	}
	return snap
}

// AckSuccess clears the transient success flag once a view has reacted
// to it. There is no automatic expiry.
func (s *Store[T]) AckSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Success = false
}

// reduce is the pure transition function. It is total over the event
// union; every settle leaves Loading false.
func reduce[T any](snap Snapshot[T], ev Event[T], id func(T) string) Snapshot[T] {
	snap.Loading = false
	switch e := ev.(type) {
	case ListLoaded[T]:
		snap.Items = e.Items
		if e.Page != nil {
			snap.Page = *e.Page
		}
	case ItemLoaded[T]:
		item := e.Item
		snap.Selected = &item
	case ItemCreated[T]:
		snap.Items = append(slices.Clone(snap.Items), e.Item)
		snap.Success = true
	case ItemUpdated[T]:
		items := slices.Clone(snap.Items)
		for i := range items {
			if id(items[i]) == id(e.Item) {
				items[i] = e.Item
			}
		}
		snap.Items = items
		if snap.Selected != nil && id(*snap.Selected) == id(e.Item) {
			item := e.Item
			snap.Selected = &item
		}
		snap.Success = true
	case ItemDeleted[T]:
		items := make([]T, 0, len(snap.Items))
		for _, item := range snap.Items {
			if id(item) != e.ID {
				items = append(items, item)
			}
		}
		snap.Items = items
		if snap.Selected != nil && id(*snap.Selected) == e.ID {
			snap.Selected = nil
		}
		snap.Success = true
	case SelectedUpdated[T]:
		item := e.Item
		snap.Selected = &item
		snap.Success = true
	case Done[T]:
		snap.Success = true
	case Cleared[T]:
		return Snapshot[T]{}
	case Failed[T]:
		snap.Err = e.Message
	}
	return snap
}
