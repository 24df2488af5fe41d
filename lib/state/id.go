package state

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// State Ids
// --------------------------------------------------------------------------

// StateId names a state slot. The index is compact and stable for the lifetime of the
// registry that created the id; equal names always map to equal ids.
type StateId struct {
	name  string
	index int
}

// Name returns the name the id was created with.
func (s StateId) Name() string { return s.name }

// Index returns the dense slot index of the id.
func (s StateId) Index() int { return s.index }

func (s StateId) String() string {
	return fmt.Sprintf("%s(%d)", s.name, s.index)
}

// --------------------------------------------------------------------------
// Built-in slots
// --------------------------------------------------------------------------

const (
	loadIndex = iota
	costsIndex
	durationIndex
	latestOperationStartTimeIndex
	earliestOperationStartTimeIndex
	loadAtBeginningIndex
	loadAtEndIndex
	maxLoadIndex
	pastMaxLoadIndex
	futureMaxLoadIndex

	// FirstUserIndex is the index of the first slot created through CreateOrGet.
	// All smaller indices belong to the built-in slots.
	FirstUserIndex
)

// Built-in slots, registered into every registry before any user slot.
var (
	Load                       = StateId{name: "load", index: loadIndex}
	Costs                      = StateId{name: "costs", index: costsIndex}
	Duration                   = StateId{name: "duration", index: durationIndex}
	LatestOperationStartTime   = StateId{name: "latest_operation_start_time", index: latestOperationStartTimeIndex}
	EarliestOperationStartTime = StateId{name: "earliest_operation_start_time", index: earliestOperationStartTimeIndex}
	LoadAtBeginning            = StateId{name: "load_at_beginning", index: loadAtBeginningIndex}
	LoadAtEnd                  = StateId{name: "load_at_end", index: loadAtEndIndex}
	MaxLoad                    = StateId{name: "max_load", index: maxLoadIndex}
	PastMaxLoad                = StateId{name: "past_max_load", index: pastMaxLoadIndex}
	FutureMaxLoad              = StateId{name: "future_max_load", index: futureMaxLoadIndex}
)

// Builtins returns the built-in slots ordered by index.
func Builtins() []StateId {
	return []StateId{
		Load,
		Costs,
		Duration,
		LatestOperationStartTime,
		EarliestOperationStartTime,
		LoadAtBeginning,
		LoadAtEnd,
		MaxLoad,
		PastMaxLoad,
		FutureMaxLoad,
	}
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// Registry hands out state ids by name.
//
// Thread-safety: CreateOrGet may be called concurrently. The index of a name is
// allocated exactly once.
type Registry struct {
	ids  *xsync.MapOf[string, StateId]
	next atomic.Int64
}

// NewRegistry creates a registry that already contains the built-in slots.
func NewRegistry() *Registry {
	r := &Registry{
		ids: xsync.NewMapOf[string, StateId](xsync.WithPresize(2 * FirstUserIndex)),
	}
	for _, id := range Builtins() {
		r.ids.Store(id.name, id)
	}
	r.next.Store(FirstUserIndex)
	return r
}

// CreateOrGet returns the id for name, allocating the next free index on first use.
func (r *Registry) CreateOrGet(name string) StateId {
	id, _ := r.ids.LoadOrCompute(name, func() StateId {
		return StateId{name: name, index: int(r.next.Add(1) - 1)}
	})
	return id
}

// Lookup returns the id for name without allocating one.
func (r *Registry) Lookup(name string) (StateId, bool) {
	return r.ids.Load(name)
}

// Len returns the number of registered ids, built-ins included.
func (r *Registry) Len() int {
	return r.ids.Size()
}

// Ids returns all registered ids ordered by index.
func (r *Registry) Ids() []StateId {
	ids := make([]StateId, 0, r.ids.Size())
	r.ids.Range(func(_ string, id StateId) bool {
		ids = append(ids, id)
		return true
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i].index < ids[j].index })
	return ids
}

// Names returns all registered names ordered by index.
func (r *Registry) Names() []string {
	ids := r.Ids()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.name
	}
	return names
}
