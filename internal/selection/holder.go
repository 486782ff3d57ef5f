package selection

import (
	"log"
	"time"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
)

// DefaultMergeWindow is how long a non-exclusive selection stays open for merging
const DefaultMergeWindow = 3500 * time.Millisecond

// AddedEvent is dispatched when elements join a selection set
type AddedEvent[E comparable] struct {
	ID   SetID
	Diff []E
}

func (AddedEvent[E]) Type() domain.EventType { return domain.EventSelectionAdded }

// RemovedEvent is dispatched when elements leave a selection set
type RemovedEvent[E comparable] struct {
	ID   SetID
	Diff []E
}

func (RemovedEvent[E]) Type() domain.EventType { return domain.EventSelectionRemoved }

// Callbacks are the notifications a view can subscribe to. Nil entries are skipped.
type Callbacks[E comparable] struct {
	OnAdded   func(id SetID, diff []E)
	OnRemoved func(id SetID, diff []E)
}

type binding struct {
	event    domain.EventType
	listener *eventbus.Listener
}

// LastSelection describes the most recent AddNewSelectionSet call
type LastSelection struct {
	ID     SetID
	Single bool
	At     time.Time
}

type options struct {
	mergeWindow time.Duration
	clock       func() time.Time
	bus         *eventbus.Dispatcher
}

// Option configures a Holder
type Option func(*options)

// WithMergeWindow sets how close two non-exclusive selections must be to merge
func WithMergeWindow(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.mergeWindow = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDispatcher makes the holder dispatch through an existing dispatcher
func WithDispatcher(d *eventbus.Dispatcher) Option {
	return func(o *options) {
		if d != nil {
			o.bus = d
		}
	}
}

// Holder owns the selection sets of one view. It is not safe for concurrent
// use; callers marshal every call onto the goroutine that owns the view.
type Holder[E comparable] struct {
	ids      *IDAllocator
	dataKeys []string
	sets     map[SetID][]E
	order    []SetID // creation order of live sets
	last     LastSelection
	hasLast  bool
	window   time.Duration
	now      func() time.Time
	bus      *eventbus.Dispatcher
	bound    map[*Callbacks[E]][]binding
}

// NewHolder creates a holder for dataKeys. The keys are registered with ids.
func NewHolder[E comparable](ids *IDAllocator, dataKeys []string, opts ...Option) *Holder[E] {
	o := options{
		mergeWindow: DefaultMergeWindow,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bus == nil {
		o.bus = eventbus.New()
	}
	if ids == nil {
		ids = NewIDAllocator()
	}
	ids.Register(dataKeys...)

	keys := make([]string, len(dataKeys))
	copy(keys, dataKeys)
	return &Holder[E]{
		ids:      ids,
		dataKeys: keys,
		sets:     make(map[SetID][]E),
		window:   o.mergeWindow,
		now:      o.clock,
		bus:      o.bus,
		bound:    make(map[*Callbacks[E]][]binding),
	}
}

// Dispatcher returns the dispatcher selection events go through
func (h *Holder[E]) Dispatcher() *eventbus.Dispatcher {
	return h.bus
}

// DataKeys returns the keys this holder was created for
func (h *Holder[E]) DataKeys() []string {
	keys := make([]string, len(h.dataKeys))
	copy(keys, h.dataKeys)
	return keys
}

// MergeWindow returns the merge window
func (h *Holder[E]) MergeWindow() time.Duration {
	return h.window
}

// NextID issues a new id for key from the shared allocator
func (h *Holder[E]) NextID(key string) (SetID, bool) {
	return h.ids.Next(key)
}

// Last returns the most recent add, if any
func (h *Holder[E]) Last() (LastSelection, bool) {
	return h.last, h.hasLast
}

// Len returns the number of live selection sets
func (h *Holder[E]) Len() int {
	return len(h.sets)
}

// IDs returns the live set ids in creation order
func (h *Holder[E]) IDs() []SetID {
	ids := make([]SetID, len(h.order))
	copy(ids, h.order)
	return ids
}

// Set returns a copy of the elements of id
func (h *Holder[E]) Set(id SetID) ([]E, bool) {
	elems, ok := h.sets[id]
	if !ok {
		return nil, false
	}
	return clone(elems), true
}

// AddNewSelectionSet stores elems under id. When the selection is not single and
// follows a non-single selection of the same key within the merge window, id is
// given back and the previous set is extended instead. It returns the id that
// holds the elements and the elements that were added.
func (h *Holder[E]) AddNewSelectionSet(elems []E, id SetID, single bool) (SetID, []E) {
	if len(elems) == 0 {
		return id, nil
	}
	if _, exists := h.sets[id]; exists {
		return id, nil
	}

	diff := dedupe(elems)
	now := h.now()
	result := id

	if h.shouldMerge(id, single, now) {
		result = h.last.ID
		if !h.ids.GiveBack(id) {
			log.Printf("Selection: could not give back unused id %s", id)
		}
		// Existing members are not filtered out of the appended elements
		h.sets[result] = append(h.sets[result], diff...)
	} else {
		h.sets[id] = clone(diff)
		h.order = append(h.order, id)
	}

	h.last = LastSelection{ID: result, Single: single, At: now}
	h.hasLast = true

	h.dispatch(AddedEvent[E]{ID: result, Diff: clone(diff)})
	return result, diff
}

func (h *Holder[E]) shouldMerge(id SetID, single bool, now time.Time) bool {
	if single || !h.hasLast || h.last.Single {
		return false
	}
	if _, exists := h.sets[h.last.ID]; !exists {
		return false
	}
	if now.Sub(h.last.At) > h.window {
		return false
	}
	return h.last.ID.Key == id.Key
}

// AddSelectionToSet appends elems to the existing set id and returns them deduplicated
func (h *Holder[E]) AddSelectionToSet(elems []E, id SetID) []E {
	if len(elems) == 0 {
		return nil
	}
	if _, exists := h.sets[id]; !exists {
		return nil
	}

	diff := dedupe(elems)
	h.sets[id] = append(h.sets[id], diff...)
	h.dispatch(AddedEvent[E]{ID: id, Diff: clone(diff)})
	return diff
}

// RemoveSelectionFromSet removes elems from id. A set that becomes empty is
// deleted and its former content is reported as the diff.
func (h *Holder[E]) RemoveSelectionFromSet(elems []E, id SetID) []E {
	existing, exists := h.sets[id]
	if len(elems) == 0 || !exists {
		return nil
	}

	drop := make(map[E]struct{}, len(elems))
	for _, e := range elems {
		drop[e] = struct{}{}
	}

	var kept, removed []E
	for _, e := range existing {
		if _, ok := drop[e]; ok {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}

	var diff []E
	if len(kept) == 0 {
		h.deleteSet(id)
		diff = existing
	} else {
		h.sets[id] = kept
		diff = removed
	}

	if len(diff) > 0 {
		h.dispatch(RemovedEvent[E]{ID: id, Diff: clone(diff)})
	}
	return diff
}

// RemoveAllSelectionSets deletes every set and returns their former content
func (h *Holder[E]) RemoveAllSelectionSets() map[SetID][]E {
	removed := make(map[SetID][]E, len(h.sets))
	order := h.order
	for _, id := range order {
		removed[id] = h.sets[id]
	}
	h.sets = make(map[SetID][]E)
	h.order = nil

	for _, id := range order {
		h.dispatch(RemovedEvent[E]{ID: id, Diff: clone(removed[id])})
	}
	return removed
}

// SetsContaining returns the ids of every set sharing at least one element with candidates
func (h *Holder[E]) SetsContaining(candidates []E) []SetID {
	wanted := make(map[E]struct{}, len(candidates))
	for _, e := range dedupe(candidates) {
		wanted[e] = struct{}{}
	}

	var ids []SetID
	for _, id := range h.order {
		for _, e := range h.sets[id] {
			if _, ok := wanted[e]; ok {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}

// StartListening binds the non-nil callbacks of cb. Calling it twice with the
// same cb is a no-op.
func (h *Holder[E]) StartListening(cb *Callbacks[E]) {
	if cb == nil {
		return
	}
	if _, ok := h.bound[cb]; ok {
		return
	}

	var bindings []binding
	if cb.OnAdded != nil {
		onAdded := cb.OnAdded
		bindings = append(bindings, binding{
			event: domain.EventSelectionAdded,
			listener: eventbus.On("selection.added", func(e eventbus.DomainEvent) {
				if ev, ok := e.(AddedEvent[E]); ok {
					onAdded(ev.ID, ev.Diff)
				}
			}),
		})
	}
	if cb.OnRemoved != nil {
		onRemoved := cb.OnRemoved
		bindings = append(bindings, binding{
			event: domain.EventSelectionRemoved,
			listener: eventbus.On("selection.removed", func(e eventbus.DomainEvent) {
				if ev, ok := e.(RemovedEvent[E]); ok {
					onRemoved(ev.ID, ev.Diff)
				}
			}),
		})
	}

	for _, b := range bindings {
		if err := h.bus.Bind(b.event, b.listener); err != nil {
			log.Printf("Selection: bind %s: %v", b.event, err)
		}
	}
	h.bound[cb] = bindings
}

// StopListening unbinds everything StartListening bound for cb
func (h *Holder[E]) StopListening(cb *Callbacks[E]) {
	bindings, ok := h.bound[cb]
	if !ok {
		return
	}
	for _, b := range bindings {
		if err := h.bus.Unbind(b.event, b.listener); err != nil {
			log.Printf("Selection: unbind %s: %v", b.event, err)
		}
	}
	delete(h.bound, cb)
}

func (h *Holder[E]) dispatch(e eventbus.DomainEvent) {
	if err := h.bus.Dispatch(e); err != nil {
		log.Printf("Selection: dispatch %s: %v", e.Type(), err)
	}
}

func (h *Holder[E]) deleteSet(id SetID) {
	delete(h.sets, id)
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
}

// dedupe drops repeated elements, keeping the first occurrence
func dedupe[E comparable](elems []E) []E {
	seen := make(map[E]struct{}, len(elems))
	out := make([]E, 0, len(elems))
	for _, e := range elems {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

func clone[E any](s []E) []E {
	if s == nil {
		return nil
	}
	c := make([]E, len(s))
	copy(c, s)
	return c
}
