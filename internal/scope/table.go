package scope

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"scopekit/internal/source"
)

type binding[V any] struct {
	depth uint32
	value V
}

// Table is a scoped map from names to payloads. Every Insert is recorded in
// the undo log of the frame at the binding's depth; Leave replays the
// innermost log newest first, so a binding is visible exactly while its
// frame is open.
type Table[V any] struct {
	entries map[source.StringID][]binding[V] // ordered by depth, then insertion
	logs    [][]source.StringID              // undo log per open frame, index = depth
}

func NewTable[V any]() *Table[V] {
	return &Table[V]{
		entries: make(map[source.StringID][]binding[V]),
		logs:    make([][]source.StringID, 0, 8),
	}
}

// Enter opens a frame one level deeper than the current one.
func (t *Table[V]) Enter() {
	t.logs = append(t.logs, nil)
}

// Leave closes the innermost frame and drops its bindings.
func (t *Table[V]) Leave() {
	n := len(t.logs)
	if n == 0 {
		violation("Table.Leave", "no open frame")
	}
	depth := toDepth(n - 1)
	log := t.logs[n-1]
	for i := len(log) - 1; i >= 0; i-- {
		t.undo(log[i], depth)
	}
	t.logs[n-1] = nil
	t.logs = t.logs[:n-1]
}

func (t *Table[V]) undo(name source.StringID, depth uint32) {
	bs := t.entries[name]
	last := len(bs) - 1
	// the innermost frame's bindings always sit at the tail
	if last < 0 || bs[last].depth != depth {
		violation("Table.Leave", "undo log out of sync for name #%d at depth %d", name, depth)
	}
	bs[last] = binding[V]{}
	if last == 0 {
		delete(t.entries, name)
		return
	}
	t.entries[name] = bs[:last]
}

// Insert binds name at depth. No conflict checks: a binding may shadow an
// outer one or sit next to another binding of the same name and depth, in
// which case the newer one wins lookups.
func (t *Table[V]) Insert(name source.StringID, depth uint32, value V) {
	if int(depth) >= len(t.logs) {
		violation("Table.Insert", "depth %d is not open (%d frames)", depth, len(t.logs))
	}
	bs := t.entries[name]
	i := len(bs)
	for i > 0 && bs[i-1].depth > depth {
		i--
	}
	t.entries[name] = slices.Insert(bs, i, binding[V]{depth: depth, value: value})
	t.logs[depth] = append(t.logs[depth], name)
}

// Lookup returns the payload of the innermost live binding of name.
func (t *Table[V]) Lookup(name source.StringID) (V, bool) {
	v, _, ok := t.LookupWithDepth(name)
	return v, ok
}

// LookupWithDepth is Lookup that also reports the binding depth.
func (t *Table[V]) LookupWithDepth(name source.StringID) (value V, depth uint32, ok bool) {
	bs := t.entries[name]
	if len(bs) == 0 {
		return value, 0, false
	}
	top := bs[len(bs)-1]
	return top.value, top.depth, true
}

// Frames reports how many frames are open.
func (t *Table[V]) Frames() int {
	return len(t.logs)
}

// Len counts live bindings.
func (t *Table[V]) Len() int {
	n := 0
	for _, log := range t.logs {
		n += len(log)
	}
	return n
}

// verify checks that every live binding belongs to an open frame and that
// per-name stacks are ordered by depth.
func (t *Table[V]) verify() error {
	live := 0
	for name, bs := range t.entries {
		if len(bs) == 0 {
			return fmt.Errorf("empty binding stack for name #%d", name)
		}
		for i, b := range bs {
			if int(b.depth) >= len(t.logs) {
				return fmt.Errorf("name #%d bound at closed depth %d", name, b.depth)
			}
			if i > 0 && bs[i-1].depth > b.depth {
				return fmt.Errorf("name #%d bindings out of depth order", name)
			}
		}
		live += len(bs)
	}
	if live != t.Len() {
		return fmt.Errorf("undo logs record %d bindings, table holds %d", t.Len(), live)
	}
	return nil
}

func toDepth(n int) uint32 {
	d, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("scope depth overflow: %w", err))
	}
	return d
}
