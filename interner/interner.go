// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package interner implements spec.md's component A: a bidirectional,
// injective map between a value type K and a small stable integer handle
// Id[K]. It is the lifetime root for whatever it interns (spec.md §3
// "Ownership") — nothing here ever forgets an id once assigned, matching
// "stable within a process lifetime" and mirroring the monotonically
// increasing id allocation the teacher uses for expression ids
// (parser/helper.go's nextID counter, common/ast's IDGenerator).
package interner

import "sync"

// Id is a stable, process-lifetime handle produced by interning a K.
// The zero value is never returned by Intern; use it as a sentinel for
// "no id" in callers that need one.
type Id[K any] uint32

// Interner assigns each distinct K (compared with Go's built-in ==,
// i.e. K must be a comparable type) a stable Id[K], handing back the
// same Id for equal values on every subsequent Intern call.
//
// Required properties (spec.md §4.A): injective on equal values, stable
// for the process lifetime, O(1) amortized lookups both ways. Not
// required, and not provided: persistence across restarts.
type Interner[K comparable] struct {
	mu      sync.RWMutex
	byValue map[K]Id[K]
	byId    []K // byId[id-1] == the K that produced Id(id)
}

// New creates an empty Interner.
func New[K comparable]() *Interner[K] {
	return &Interner[K]{byValue: make(map[K]Id[K])}
}

// Intern returns the stable Id for k, allocating a new one if k has
// never been interned before.
func (in *Interner[K]) Intern(k K) Id[K] {
	in.mu.RLock()
	if id, ok := in.byValue[k]; ok {
		in.mu.RUnlock()
		return id
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	// Re-check under the write lock: another goroutine may have
	// interned the same value while we waited.
	if id, ok := in.byValue[k]; ok {
		return id
	}
	in.byId = append(in.byId, k)
	id := Id[K](len(in.byId))
	in.byValue[k] = id
	return id
}

// Lookup returns the K that produced id. ok is false for an id this
// Interner never allocated.
func (in *Interner[K]) Lookup(id Id[K]) (K, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == 0 || int(id) > len(in.byId) {
		var zero K
		return zero, false
	}
	return in.byId[id-1], true
}

// Len reports how many distinct values have been interned so far.
func (in *Interner[K]) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byId)
}
