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
	"io"
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

type benchTypes interface {
	int64 | string
}

func benchSizes(f func(b *testing.B, n int)) func(*testing.B) {
	var cases = []int{
		16,
		128,
		1024,
		8192,
		1 << 16,
	}

	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n) })
		}
	}
}

func genKeys[T benchTypes](start, end int) []T {
	keys := make([]T, end-start)
	for i := range keys {
		switch k := any(&keys[i]).(type) {
		case *int64:
			*k = int64(start + i)
		case *string:
			*k = strconv.Itoa(start + i)
		}
	}
	return keys
}

// benchImpls runs the given per-size benchmark against the runtime map and
// both table implementations, mirroring keys of type T for each.
func benchImpls[T benchTypes](
	b *testing.B,
	runtimeMap func(b *testing.B, n int),
	withTable func(newTable func(n int) table[T, T]) func(b *testing.B, n int),
) {
	b.Run("impl=runtimeMap", benchSizes(runtimeMap))
	b.Run("impl=chainingTable", benchSizes(withTable(func(n int) table[T, T] {
		return NewChaining[T, T](n)
	})))
	b.Run("impl=probingTable", benchSizes(withTable(func(n int) table[T, T] {
		return NewProbing[T, T](n)
	})))
}

func BenchmarkMapGetHit(b *testing.B) {
	b.Run("t=Int64", func(b *testing.B) {
		benchImpls[int64](b, benchmarkRuntimeMapGetHit[int64], benchmarkTableGetHit[int64])
	})
	b.Run("t=String", func(b *testing.B) {
		benchImpls[string](b, benchmarkRuntimeMapGetHit[string], benchmarkTableGetHit[string])
	})
}

func BenchmarkMapGetMiss(b *testing.B) {
	b.Run("t=Int64", func(b *testing.B) {
		benchImpls[int64](b, benchmarkRuntimeMapGetMiss[int64], benchmarkTableGetMiss[int64])
	})
	b.Run("t=String", func(b *testing.B) {
		benchImpls[string](b, benchmarkRuntimeMapGetMiss[string], benchmarkTableGetMiss[string])
	})
}

func BenchmarkMapPutGrow(b *testing.B) {
	b.Run("t=Int64", func(b *testing.B) {
		benchImpls[int64](b, benchmarkRuntimeMapPutGrow[int64], benchmarkTablePutGrow[int64])
	})
	b.Run("t=String", func(b *testing.B) {
		benchImpls[string](b, benchmarkRuntimeMapPutGrow[string], benchmarkTablePutGrow[string])
	})
}

func BenchmarkMapPutDelete(b *testing.B) {
	b.Run("t=Int64", func(b *testing.B) {
		benchImpls[int64](b, benchmarkRuntimeMapPutDelete[int64], benchmarkTablePutDelete[int64])
	})
	b.Run("t=String", func(b *testing.B) {
		benchImpls[string](b, benchmarkRuntimeMapPutDelete[string], benchmarkTablePutDelete[string])
	})
}

func benchmarkTableGetHit[T benchTypes](newTable func(n int) table[T, T]) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		m := newTable(n)
		keys := genKeys[T](0, n)
		for _, k := range keys {
			m.Put(k, k)
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		var err error
		for i := 0; i < b.N; i++ {
			_, err = m.Get(keys[i%n])
		}
		cs.Stop()
		b.StopTimer()
		fmt.Fprint(io.Discard, err)
	}
}

func benchmarkTableGetMiss[T benchTypes](newTable func(n int) table[T, T]) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		m := newTable(0)
		keys := genKeys[T](0, n)
		miss := genKeys[T](-n, 0)
		for _, k := range keys {
			m.Put(k, k)
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		var err error
		for i := 0; i < b.N; i++ {
			_, err = m.Get(miss[i%len(miss)])
		}
		cs.Stop()
		b.StopTimer()
		fmt.Fprint(io.Discard, err)
	}
}

func benchmarkTablePutGrow[T benchTypes](newTable func(n int) table[T, T]) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		keys := genKeys[T](0, n)
		cs := perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m := newTable(0)
			for _, k := range keys {
				m.Put(k, k)
			}
		}
		cs.Stop()
	}
}

func benchmarkTablePutDelete[T benchTypes](newTable func(n int) table[T, T]) func(b *testing.B, n int) {
	return func(b *testing.B, n int) {
		m := newTable(n)
		keys := genKeys[T](0, n)
		for _, k := range keys {
			m.Put(k, k)
		}
		cs := perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			k := keys[i%n]
			m.Delete(k)
			m.Put(k, k)
		}
		cs.Stop()
	}
}

func benchmarkRuntimeMapGetHit[T benchTypes](b *testing.B, n int) {
	m := make(map[T]T, n)
	keys := genKeys[T](0, n)
	for _, k := range keys {
		m[k] = k
	}
	// Defeat the runtime map's pointer-equality shortcut for string keys by
	// regenerating the lookup keys.
	keys = genKeys[T](0, n)
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i%n]]
	}
	cs.Stop()
}

func benchmarkRuntimeMapGetMiss[T benchTypes](b *testing.B, n int) {
	m := make(map[T]T)
	keys := genKeys[T](0, n)
	miss := genKeys[T](-n, 0)
	for _, k := range keys {
		m[k] = k
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[miss[i%len(miss)]]
	}
	cs.Stop()
}

func benchmarkRuntimeMapPutGrow[T benchTypes](b *testing.B, n int) {
	keys := genKeys[T](0, n)
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := make(map[T]T)
		for _, k := range keys {
			m[k] = k
		}
	}
	cs.Stop()
}

func benchmarkRuntimeMapPutDelete[T benchTypes](b *testing.B, n int) {
	m := make(map[T]T, n)
	keys := genKeys[T](0, n)
	for _, k := range keys {
		m[k] = k
	}
	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k := keys[i%n]
		delete(m, k)
		m[k] = k
	}
	cs.Stop()
}
