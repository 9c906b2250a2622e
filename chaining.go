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

// ChainingTable is a hash table that resolves collisions with separate
// chaining: every bucket holds the entries whose hash maps to it, and a
// lookup scans its bucket linearly. The table grows by doubling whenever an
// insert would push the load factor (entries per bucket on average) above
// 0.75, so bucket scans stay short.
//
// A ChainingTable is NOT goroutine-safe.
type ChainingTable[K comparable, V any] struct {
	cfg config[K, V]
	// buckets is capacity in length. A nil bucket is an empty bucket;
	// buckets only allocate once an entry lands in them.
	buckets [][]Entry[K, V]
	// The number of entries across all buckets.
	count int
}

// NewChaining constructs an empty ChainingTable with the specified initial
// capacity (number of buckets). If initialCapacity is not positive the
// table starts with 16 buckets. The zero value for a ChainingTable is not
// usable.
func NewChaining[K comparable, V any](initialCapacity int, options ...Option[K, V]) *ChainingTable[K, V] {
	cfg := defaultConfig[K, V]()
	for _, op := range options {
		op.apply(&cfg)
	}
	return &ChainingTable[K, V]{
		cfg:     cfg,
		buckets: make([][]Entry[K, V], normCapacity(initialCapacity)),
	}
}

// Put inserts an entry into the table, overwriting the existing value if an
// entry with the same key already exists. Put cannot fail.
func (t *ChainingTable[K, V]) Put(key K, value V) {
	// Grow before placing so the load factor bound holds when we return.
	if float64(t.count+1) > maxChainingLoad*float64(len(t.buckets)) {
		t.rehash(2 * len(t.buckets))
	}

	i := t.bucketIndex(key, len(t.buckets))
	b := t.buckets[i]
	for j := range b {
		if t.cfg.equals(b[j].Key, key) {
			if debug {
				fmt.Printf("put(%v): bucket=%d updating in place\n", key, i)
			}
			b[j].Value = value
			t.checkInvariants()
			return
		}
	}

	t.buckets[i] = append(b, Entry[K, V]{Key: key, Value: value})
	t.count++
	if debug {
		fmt.Printf("put(%v): bucket=%d chain-len=%d count=%d\n", key, i, len(t.buckets[i]), t.count)
	}
	t.checkInvariants()
}

// Get retrieves the value stored for the specified key, returning
// ErrNotFound if no entry with that key exists.
func (t *ChainingTable[K, V]) Get(key K) (value V, err error) {
	b := t.buckets[t.bucketIndex(key, len(t.buckets))]
	for j := range b {
		if t.cfg.equals(b[j].Key, key) {
			return b[j].Value, nil
		}
	}
	return value, ErrNotFound
}

// Contains reports whether an entry with the specified key exists.
func (t *ChainingTable[K, V]) Contains(key K) bool {
	b := t.buckets[t.bucketIndex(key, len(t.buckets))]
	for j := range b {
		if t.cfg.equals(b[j].Key, key) {
			return true
		}
	}
	return false
}

// Delete removes the entry with the specified key, reporting whether an
// entry was removed. Capacity never shrinks on delete.
func (t *ChainingTable[K, V]) Delete(key K) bool {
	i := t.bucketIndex(key, len(t.buckets))
	b := t.buckets[i]
	for j := range b {
		if t.cfg.equals(b[j].Key, key) {
			// Order within a bucket is irrelevant, so move the last entry
			// into the hole rather than shifting the tail.
			last := len(b) - 1
			b[j] = b[last]
			b[last] = Entry[K, V]{}
			t.buckets[i] = b[:last]
			t.count--
			if debug {
				fmt.Printf("delete(%v): bucket=%d chain-len=%d count=%d\n", key, i, last, t.count)
			}
			t.checkInvariants()
			return true
		}
	}
	return false
}

// Len returns the number of entries in the table.
func (t *ChainingTable[K, V]) Len() int {
	return t.count
}

// Cap returns the number of buckets.
func (t *ChainingTable[K, V]) Cap() int {
	return len(t.buckets)
}

// LoadFactor returns the ratio of entries to buckets. It never exceeds 0.75
// once an operation has returned.
func (t *ChainingTable[K, V]) LoadFactor() float64 {
	return float64(t.count) / float64(len(t.buckets))
}

// Clear removes every entry. Capacity is unchanged.
func (t *ChainingTable[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.count = 0
	t.checkInvariants()
}

// All calls yield sequentially for each key and value present in the table.
// If yield returns false, iteration stops. Iteration order is unspecified.
// The table must not be mutated during iteration.
func (t *ChainingTable[K, V]) All(yield func(key K, value V) bool) {
	for i := range t.buckets {
		for j := range t.buckets[i] {
			if !yield(t.buckets[i][j].Key, t.buckets[i][j].Value) {
				return
			}
		}
	}
}

// Keys returns the keys of all entries, in unspecified order.
func (t *ChainingTable[K, V]) Keys() []K {
	keys := make([]K, 0, t.count)
	t.All(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns the values of all entries, in unspecified order.
func (t *ChainingTable[K, V]) Values() []V {
	values := make([]V, 0, t.count)
	t.All(func(_ K, v V) bool {
		values = append(values, v)
		return true
	})
	return values
}

func (t *ChainingTable[K, V]) bucketIndex(key K, capacity int) int {
	return int(t.cfg.hash(key, t.cfg.seed) % uint64(capacity))
}

// rehash rebuilds the bucket array at newCapacity, re-placing every entry
// against the new capacity. The keys are distinct by construction so
// entries are appended directly, without the equality scan or the growth
// check Put performs; the latter also guarantees rehash never nests.
// Rehashing touches every entry exactly once and is the only operation that
// changes capacity.
func (t *ChainingTable[K, V]) rehash(newCapacity int) {
	if debug {
		fmt.Printf("rehash: capacity=%d->%d count=%d\n", len(t.buckets), newCapacity, t.count)
	}
	fresh := make([][]Entry[K, V], newCapacity)
	for _, b := range t.buckets {
		for _, e := range b {
			i := t.bucketIndex(e.Key, newCapacity)
			fresh[i] = append(fresh[i], e)
		}
	}
	t.buckets = fresh
}

// checkInvariants verifies internal consistency when built with invariants
// enabled. It is a no-op otherwise.
func (t *ChainingTable[K, V]) checkInvariants() {
	if invariants {
		var count int
		for i := range t.buckets {
			for j := range t.buckets[i] {
				e := &t.buckets[i][j]
				if got := t.bucketIndex(e.Key, len(t.buckets)); got != i {
					panic(fmt.Sprintf("invariant failed: %v in bucket %d, hashes to %d\n%s",
						e.Key, i, got, t.debugString()))
				}
				count++
			}
		}
		if count != t.count {
			panic(fmt.Sprintf("invariant failed: found %d entries, but count is %d\n%s",
				count, t.count, t.debugString()))
		}
		if lf := t.LoadFactor(); lf > maxChainingLoad {
			panic(fmt.Sprintf("invariant failed: load factor %.3f exceeds %.2f\n%s",
				lf, maxChainingLoad, t.debugString()))
		}
	}
}

func (t *ChainingTable[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  count=%d\n", len(t.buckets), t.count)
	for i, b := range t.buckets {
		if len(b) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		for j := range b {
			fmt.Fprintf(&buf, " [%v: %v]", b[j].Key, b[j].Value)
		}
		fmt.Fprintf(&buf, "\n")
	}
	return buf.String()
}
