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

import "hash/maphash"

// config holds the pieces of a table that options are allowed to touch
// before any entry is inserted.
type config[K comparable, V any] struct {
	hash   HashFn[K]
	equals EqualFn[K]
	seed   maphash.Seed
}

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		hash:   defaultHash[K],
		equals: defaultEqual[K],
		seed:   maphash.MakeSeed(),
	}
}

// Option provides an interface to do work on a table while it is being
// created. The same options apply to both ChainingTable and ProbingTable.
type Option[K comparable, V any] interface {
	apply(c *config[K, V])
}

type hashOption[K comparable, V any] struct {
	hash HashFn[K]
}

func (op hashOption[K, V]) apply(c *config[K, V]) {
	c.hash = op.hash
}

// WithHash is an option to specify the hash function to use instead of the
// default maphash-based one. The function must be consistent with the
// table's equality predicate: keys that compare equal must hash equally.
func WithHash[K comparable, V any](hash HashFn[K]) Option[K, V] {
	return hashOption[K, V]{hash}
}

type equalsOption[K comparable, V any] struct {
	equals EqualFn[K]
}

func (op equalsOption[K, V]) apply(c *config[K, V]) {
	c.equals = op.equals
}

// WithEquals is an option to specify the key equality predicate to use
// instead of ==. Callers replacing equality almost always need to replace
// the hash function as well so the two stay consistent.
func WithEquals[K comparable, V any](equals EqualFn[K]) Option[K, V] {
	return equalsOption[K, V]{equals}
}

type seedOption[K comparable, V any] struct {
	seed maphash.Seed
}

func (op seedOption[K, V]) apply(c *config[K, V]) {
	c.seed = op.seed
}

// WithSeed is an option to specify the maphash seed, e.g. to share one seed
// across several tables. By default every table gets its own random seed.
func WithSeed[K comparable, V any](seed maphash.Seed) Option[K, V] {
	return seedOption[K, V]{seed}
}
