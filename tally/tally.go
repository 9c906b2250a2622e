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

// Package tally implements small text- and slice-analysis helpers on top of
// the hashtable package: frequency counting, anagram checking, first-unique
// lookups, duplicate detection, and two-sum. They double as reference
// clients for the table API.
package tally

import (
	"errors"
	"strings"
	"unicode"

	"github.com/dsgo/hashtable"
)

// CountOccurrences counts how many times each rune occurs in s.
func CountOccurrences(s string) *hashtable.ChainingTable[rune, int] {
	counts := hashtable.NewChaining[rune, int](0)
	for _, r := range s {
		bump(counts, r, 1)
	}
	return counts
}

// WordFrequencies counts how many times each word occurs in text. Words are
// lowercased and stripped of surrounding punctuation, so "Go, go, GO!"
// counts "go" three times.
func WordFrequencies(text string) *hashtable.ChainingTable[string, int] {
	counts := hashtable.NewChaining[string, int](0)
	for _, field := range strings.Fields(text) {
		word := strings.TrimFunc(strings.ToLower(field), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word == "" {
			continue
		}
		bump(counts, word, 1)
	}
	return counts
}

// FirstUniqueChar returns the first rune of s that occurs exactly once, and
// false if every rune repeats (or s is empty).
func FirstUniqueChar(s string) (rune, bool) {
	counts := CountOccurrences(s)
	for _, r := range s {
		if n, err := counts.Get(r); err == nil && n == 1 {
			return r, true
		}
	}
	return 0, false
}

// AreAnagrams reports whether a and b contain exactly the same runes with
// the same multiplicities.
func AreAnagrams(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	counts := hashtable.NewChaining[rune, int](0)
	for _, r := range a {
		bump(counts, r, 1)
	}

	// Walk b undoing a's counts; any rune b has that a lacks, or has more
	// of, fails immediately, and leftovers mean a had extras.
	for _, r := range b {
		n, err := counts.Get(r)
		if err != nil {
			return false
		}
		if n == 1 {
			counts.Delete(r)
		} else {
			counts.Put(r, n-1)
		}
	}
	return counts.Len() == 0
}

// HasDuplicates reports whether xs contains any element twice.
func HasDuplicates[T comparable](xs []T) bool {
	seen := hashtable.NewProbing[T, struct{}](0)
	for _, x := range xs {
		if seen.Contains(x) {
			return true
		}
		seen.Put(x, struct{}{})
	}
	return false
}

// TwoSum returns indices i < j such that nums[i]+nums[j] == target, and
// false if no such pair exists.
func TwoSum(nums []int, target int) (i, j int, ok bool) {
	byValue := hashtable.NewProbing[int, int](0)
	for idx, x := range nums {
		if prev, err := byValue.Get(target - x); err == nil {
			return prev, idx, true
		}
		byValue.Put(x, idx)
	}
	return 0, 0, false
}

// bump adds delta to the count stored under key.
func bump[K comparable](counts *hashtable.ChainingTable[K, int], key K, delta int) {
	n, err := counts.Get(key)
	if err != nil && !errors.Is(err, hashtable.ErrNotFound) {
		// Get has a one-error taxonomy; anything else is a bug.
		panic(err)
	}
	counts.Put(key, n+delta)
}
