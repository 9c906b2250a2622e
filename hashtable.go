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

// Package hashtable provides two generic hash table implementations of the
// same map-like contract: ChainingTable, which resolves collisions with
// separate chaining (each bucket holds the entries that hash to it), and
// ProbingTable, which resolves collisions with open addressing and linear
// probing over a flat slot array. See
// https://en.wikipedia.org/wiki/Hash_table for background on both
// strategies.
//
// Both tables map keys to values with amortized O(1) Put, Get, and Delete.
// An insert that would push the load factor above the table's bound (0.75
// for chaining, 0.70 for probing) first grows the table to double its
// capacity and re-places every live entry, so the bound holds whenever an
// operation returns. Capacity never shrinks.
//
// Keys are hashed with hash/maphash by default, seeded per table, and
// compared with ==. Both the hash function and the equality predicate can
// be replaced via the WithHash and WithEquals options, which is how keys
// with domain-specific identity (case-insensitive strings, say) are
// supported.
//
// ProbingTable deletes by tombstone: a removed slot is marked deleted
// rather than empty so that probe sequences for keys displaced past it keep
// working. Tombstones are reclaimed only when a capacity-triggered rehash
// rebuilds the slot array; see the ProbingTable documentation for the
// consequences.
//
// Neither table is goroutine-safe. Every operation runs to completion on
// the calling goroutine with no internal locking; callers that share a
// table across goroutines must synchronize around it.
package hashtable

import (
	"errors"
	"hash/maphash"
)

const (
	debug      = false
	invariants = false

	// Load factor bounds. Exceeding a bound on insert triggers a doubling
	// rehash before the insert completes.
	maxChainingLoad = 0.75
	maxProbingLoad  = 0.70

	// defaultCapacity is used when a table is constructed with a
	// non-positive initial capacity.
	defaultCapacity = 16
)

// ErrNotFound is returned by Get when no entry with the given key exists.
var ErrNotFound = errors.New("hashtable: key not found")

// Entry holds a key and value.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// HashFn hashes a key against a per-table seed. Implementations must be
// deterministic for the lifetime of the table: equal keys (under the
// table's equality predicate) must hash equally.
type HashFn[K comparable] func(key K, seed maphash.Seed) uint64

// EqualFn reports whether two keys are the same key. It must be an
// equivalence relation and must be consistent with the table's hash
// function.
type EqualFn[K comparable] func(a, b K) bool

// defaultHash hashes any comparable key the way Go's builtin map would.
func defaultHash[K comparable](key K, seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, key)
}

func defaultEqual[K comparable](a, b K) bool {
	return a == b
}

// normCapacity clamps a requested initial capacity to something usable.
func normCapacity(initialCapacity int) int {
	if initialCapacity <= 0 {
		return defaultCapacity
	}
	return initialCapacity
}
