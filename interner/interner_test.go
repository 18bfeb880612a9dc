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

package interner

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternReturnsStableIdForEqualValues(t *testing.T) {
	in := New[string]()
	id1 := in.Intern("foo")
	id2 := in.Intern("foo")
	assert.Equal(t, id1, id2)
}

func TestInternAssignsDistinctIdsForDistinctValues(t *testing.T) {
	in := New[string]()
	id1 := in.Intern("foo")
	id2 := in.Intern("bar")
	assert.NotEqual(t, id1, id2)
}

func TestLookupRoundTrips(t *testing.T) {
	in := New[string]()
	id := in.Intern("hello")

	got, ok := in.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "hello", got)
}

func TestLookupUnknownIdFails(t *testing.T) {
	in := New[string]()
	_, ok := in.Lookup(Id[string](42))
	assert.False(t, ok)

	_, ok = in.Lookup(0)
	assert.False(t, ok)
}

func TestLen(t *testing.T) {
	in := New[int]()
	assert.Equal(t, 0, in.Len())
	in.Intern(1)
	in.Intern(2)
	in.Intern(1)
	assert.Equal(t, 2, in.Len())
}

func TestInternConcurrentSameValue(t *testing.T) {
	in := New[string]()
	var wg sync.WaitGroup
	ids := make([]Id[string], 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = in.Intern("shared")
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, in.Len())
}
