package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPSC_EmptyPop(t *testing.T) {
	q := New[int]()
	v, ok := q.TryPop()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestSPSC_FIFO(t *testing.T) {
	q := New[string]()
	q.Push("a")
	q.Push("b")
	q.Push("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.TryPop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := q.TryPop()
	assert.False(t, ok)
}

func TestSPSC_ReleasesPayload(t *testing.T) {
	q := New[[]byte]()
	q.Push(make([]byte, 16))
	_, ok := q.TryPop()
	require.True(t, ok)

	assert.Nil(t, q.tail.Load().value, "popped slot must not retain the payload")
}

func TestSPSC_ReusesNodes(t *testing.T) {
	q := New[int]()

	// Warm up: one node in flight plus the stub.
	q.Push(1)
	q.TryPop()

	allocs := testing.AllocsPerRun(100, func() {
		q.Push(2)
		q.TryPop()
	})
	assert.Zero(t, allocs)
}

func TestSPSC_Concurrent(t *testing.T) {
	const n = 100_000
	q := New[int]()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range n {
			q.Push(i)
		}
	}()

	got := make([]int, 0, n)
	for len(got) < n {
		if v, ok := q.TryPop(); ok {
			got = append(got, v)
		}
	}
	wg.Wait()

	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
	_, ok := q.TryPop()
	assert.False(t, ok)
}
