package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// SetID identifies a selection set as <key>:<seq>
type SetID struct {
	Key string
	Seq int
}

func (id SetID) String() string {
	return id.Key + ":" + strconv.Itoa(id.Seq)
}

// IsZero reports whether id was never issued
func (id SetID) IsZero() bool {
	return id == SetID{}
}

// ParseSetID parses the <key>:<seq> form. The key may itself contain colons.
func ParseSetID(s string) (SetID, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return SetID{}, fmt.Errorf("invalid selection id %q", s)
	}
	seq, err := strconv.Atoi(s[i+1:])
	if err != nil || seq < 0 {
		return SetID{}, fmt.Errorf("invalid selection id %q", s)
	}
	return SetID{Key: s[:i], Seq: seq}, nil
}

// IDAllocator hands out selection ids per data key. One allocator is shared by
// every holder of an application so ids never collide across views.
type IDAllocator struct {
	next map[string]int
	last SetID
	has  bool
}

// NewIDAllocator creates an allocator that knows the given keys
func NewIDAllocator(keys ...string) *IDAllocator {
	a := &IDAllocator{next: make(map[string]int)}
	a.Register(keys...)
	return a
}

// Register declares keys. Keys that are already known keep their counter.
func (a *IDAllocator) Register(keys ...string) {
	for _, k := range keys {
		if _, ok := a.next[k]; !ok {
			a.next[k] = 0
		}
	}
}

// Known reports whether key was registered
func (a *IDAllocator) Known(key string) bool {
	_, ok := a.next[key]
	return ok
}

// Next issues the next id for key. It returns false for unknown keys.
func (a *IDAllocator) Next(key string) (SetID, bool) {
	seq, ok := a.next[key]
	if !ok {
		return SetID{}, false
	}
	a.next[key] = seq + 1
	a.last = SetID{Key: key, Seq: seq}
	a.has = true
	return a.last, true
}

// Last returns the most recently issued id
func (a *IDAllocator) Last() (SetID, bool) {
	return a.last, a.has
}

// GiveBack returns an unused id to its key. Only the most recently issued id
// can be given back, and only once.
func (a *IDAllocator) GiveBack(id SetID) bool {
	if !a.has || id != a.last || a.next[id.Key] != id.Seq+1 {
		return false
	}
	a.next[id.Key] = id.Seq
	a.has = false
	return true
}
