// Copyright 2026 The dsgo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashtable

import (
	"fmt"
	"strings"
)

// Each slot in a ProbingTable is in one of three states:
//
//	empty:    never held an entry since the last rehash; terminates probes
//	occupied: holds a live entry
//	deleted:  tombstone; a probe passes through it but an insert may reuse it
//
// Deleting by tombstone rather than by resetting to empty is what keeps
// probe sequences intact: an empty slot in the middle of a probe chain
// would make lookups stop early and lose the keys displaced past it.
type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotDeleted
)

func (s slotState) String() string {
	switch s {
	case slotEmpty:
		return "empty"
	case slotOccupied:
		return "occupied"
	case slotDeleted:
		return "deleted"
	}
	return fmt.Sprintf("slotState(%d)", uint8(s))
}

type slot[K comparable, V any] struct {
	key   K
	value V
	state slotState
}

// ProbingTable is a hash table that resolves collisions with open
// addressing: all entries live in a single flat slot array, and a collision
// scans forward one slot at a time (wrapping at the end) until it finds the
// key or an empty slot. The table grows by doubling whenever an insert
// would push the load factor above 0.70.
//
// Deletion marks slots as tombstones instead of emptying them (see
// slotState). Tombstones do not count toward the load factor, and they are
// reclaimed only when a capacity-triggered rehash rebuilds the slot array.
// A table under heavy delete/insert churn that never grows therefore
// accumulates tombstones, which lengthens probes without triggering a
// rehash. That staleness is a known limitation of this scheme; probes
// remain correct and bounded by the capacity regardless.
//
// A ProbingTable is NOT goroutine-safe.
type ProbingTable[K comparable, V any] struct {
	cfg config[K, V]
	// slots is capacity in length.
	slots []slot[K, V]
	// The number of occupied slots. Tombstones are excluded.
	count int
}

// NewProbing constructs an empty ProbingTable with the specified initial
// capacity (number of slots). If initialCapacity is not positive the table
// starts with 16 slots. The zero value for a ProbingTable is not usable.
func NewProbing[K comparable, V any](initialCapacity int, options ...Option[K, V]) *ProbingTable[K, V] {
	cfg := defaultConfig[K, V]()
	for _, op := range options {
		op.apply(&cfg)
	}
	return &ProbingTable[K, V]{
		cfg:   cfg,
		slots: make([]slot[K, V], normCapacity(initialCapacity)),
	}
}

// Put inserts an entry into the table, overwriting the existing value if an
// entry with the same key already exists. Put cannot fail.
func (t *ProbingTable[K, V]) Put(key K, value V) {
	// Grow before placing so the load factor bound holds when we return.
	if float64(t.count+1) > maxProbingLoad*float64(len(t.slots)) {
		t.rehash(2 * len(t.slots))
	}

	// Probe from the home slot. An existing entry for the key must be found
	// before any empty slot, so the scan can only place once it has ruled
	// the key out. The first tombstone on the way is remembered and reused
	// for the placement: the tombstone precedes the empty slot in every
	// future probe for this key, so the entry stays reachable.
	i := t.homeIndex(key, len(t.slots))
	reuse := -1
	for probes := 0; probes < len(t.slots); probes++ {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			if reuse >= 0 {
				i = reuse
				s = &t.slots[i]
			}
			*s = slot[K, V]{key: key, value: value, state: slotOccupied}
			t.count++
			if debug {
				fmt.Printf("put(%v): inserting at slot=%d count=%d\n", key, i, t.count)
			}
			t.checkInvariants()
			return
		case slotOccupied:
			if t.cfg.equals(s.key, key) {
				s.value = value
				if debug {
					fmt.Printf("put(%v): updating slot=%d in place\n", key, i)
				}
				t.checkInvariants()
				return
			}
		case slotDeleted:
			if reuse < 0 {
				reuse = i
			}
		}
		i++
		if i == len(t.slots) {
			i = 0
		}
	}

	// The scan wrapped back to its start. With the load factor bound
	// enforced above there is at least one non-occupied slot, so the only
	// way to get here is a table saturated with tombstones; the placement
	// target is then the first tombstone on the probe path.
	if reuse >= 0 {
		t.slots[reuse] = slot[K, V]{key: key, value: value, state: slotOccupied}
		t.count++
		if debug {
			fmt.Printf("put(%v): inserting at tombstone slot=%d count=%d\n", key, reuse, t.count)
		}
		t.checkInvariants()
		return
	}
	panic(fmt.Sprintf("hashtable: probe wrapped around with no usable slot (capacity=%d count=%d); load factor invariant violated\n%s",
		len(t.slots), t.count, t.debugString()))
}

// Get retrieves the value stored for the specified key, returning
// ErrNotFound if no entry with that key exists.
func (t *ProbingTable[K, V]) Get(key K) (value V, err error) {
	if i, ok := t.find(key); ok {
		return t.slots[i].value, nil
	}
	return value, ErrNotFound
}

// Contains reports whether an entry with the specified key exists.
func (t *ProbingTable[K, V]) Contains(key K) bool {
	_, ok := t.find(key)
	return ok
}

// Delete removes the entry with the specified key, reporting whether an
// entry was removed. The slot becomes a tombstone, not an empty slot;
// capacity never shrinks on delete.
func (t *ProbingTable[K, V]) Delete(key K) bool {
	i, ok := t.find(key)
	if !ok {
		return false
	}
	t.slots[i] = slot[K, V]{state: slotDeleted}
	t.count--
	if debug {
		fmt.Printf("delete(%v): tombstone at slot=%d count=%d\n", key, i, t.count)
	}
	t.checkInvariants()
	return true
}

// find probes for the key and returns its slot index. The probe starts at
// the key's home slot and advances by one (wrapping), passing through
// tombstones; it stops at the first empty slot or after visiting every slot
// once, whichever comes first, so it terminates even on a table saturated
// with tombstones.
func (t *ProbingTable[K, V]) find(key K) (int, bool) {
	i := t.homeIndex(key, len(t.slots))
	for probes := 0; probes < len(t.slots); probes++ {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			return 0, false
		case slotOccupied:
			if t.cfg.equals(s.key, key) {
				return i, true
			}
		}
		i++
		if i == len(t.slots) {
			i = 0
		}
	}
	return 0, false
}

// Len returns the number of entries in the table.
func (t *ProbingTable[K, V]) Len() int {
	return t.count
}

// Cap returns the number of slots.
func (t *ProbingTable[K, V]) Cap() int {
	return len(t.slots)
}

// LoadFactor returns the ratio of occupied slots to capacity. Tombstones
// are excluded. It never exceeds 0.70 once an operation has returned.
func (t *ProbingTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.slots))
}

// Clear removes every entry, resetting all slots (tombstones included) to
// empty. Capacity is unchanged.
func (t *ProbingTable[K, V]) Clear() {
	clear(t.slots)
	t.count = 0
	t.checkInvariants()
}

// All calls yield sequentially for each key and value present in the table.
// If yield returns false, iteration stops. Iteration order is unspecified.
// The table must not be mutated during iteration.
func (t *ProbingTable[K, V]) All(yield func(key K, value V) bool) {
	for i := range t.slots {
		if t.slots[i].state == slotOccupied {
			if !yield(t.slots[i].key, t.slots[i].value) {
				return
			}
		}
	}
}

// Keys returns the keys of all entries, in unspecified order.
func (t *ProbingTable[K, V]) Keys() []K {
	keys := make([]K, 0, t.count)
	t.All(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns the values of all entries, in unspecified order.
func (t *ProbingTable[K, V]) Values() []V {
	values := make([]V, 0, t.count)
	t.All(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

func (t *ProbingTable[K, V]) homeIndex(key K, capacity int) int {
	return int(t.cfg.hash(key, t.cfg.seed) % uint64(capacity))
}

// rehash rebuilds the slot array at newCapacity, re-placing every occupied
// slot against the new capacity. Tombstones and empty slots are skipped,
// which makes this the only path that reclaims tombstones. Placement scans
// for the first empty slot directly: the keys are distinct by construction
// and the fresh array has no tombstones, so neither the equality scan nor
// the growth check in Put is needed (the latter also guarantees rehash
// never nests).
func (t *ProbingTable[K, V]) rehash(newCapacity int) {
	if debug {
		fmt.Printf("rehash: capacity=%d->%d count=%d\n", len(t.slots), newCapacity, t.count)
	}
	fresh := make([]slot[K, V], newCapacity)
	for _, s := range t.slots {
		if s.state != slotOccupied {
			continue
		}
		i := t.homeIndex(s.key, newCapacity)
		for fresh[i].state == slotOccupied {
			i++
			if i == newCapacity {
				i = 0
			}
		}
		fresh[i] = slot[K, V]{key: s.key, value: s.value, state: slotOccupied}
	}
	t.slots = fresh
}

// checkInvariants verifies internal consistency when built with invariants
// enabled. It is a no-op otherwise.
func (t *ProbingTable[K, V]) checkInvariants() {
	if invariants {
		var occupied int
		for i := range t.slots {
			s := &t.slots[i]
			switch s.state {
			case slotOccupied:
				occupied++
				if _, ok := t.find(s.key); !ok {
					panic(fmt.Sprintf("invariant failed: slot(%d): %v not reachable by probing\n%s",
						i, s.key, t.debugString()))
				}
			case slotEmpty, slotDeleted:
				// ok
			default:
				panic(fmt.Sprintf("invariant failed: slot(%d): bad state %d\n%s",
					i, s.state, t.debugString()))
			}
		}
		if occupied != t.count {
			panic(fmt.Sprintf("invariant failed: found %d occupied slots, but count is %d\n%s",
				occupied, t.count, t.debugString()))
		}
		if lf := t.LoadFactor(); lf > maxProbingLoad {
			panic(fmt.Sprintf("invariant failed: load factor %.3f exceeds %.2f\n%s",
				lf, maxProbingLoad, t.debugString()))
		}
	}
}

func (t *ProbingTable[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  count=%d\n", len(t.slots), t.count)
	for i := range t.slots {
		s := &t.slots[i]
		switch s.state {
		case slotOccupied:
			fmt.Fprintf(&buf, "  %4d: [%v: %v]\n", i, s.key, s.value)
		default:
			fmt.Fprintf(&buf, "  %4d: %s\n", i, s.state)
		}
	}
	return buf.String()
}
