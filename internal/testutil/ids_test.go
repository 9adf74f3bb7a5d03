package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs(t *testing.T) {
	ids := NewSequentialIDs("req")

	assert.Equal(t, 0, ids.Count())
	assert.Equal(t, "req-001", ids.Next())
	assert.Equal(t, "req-002", ids.Next())
	assert.Equal(t, 2, ids.Count())

	ids.Reset()
	assert.Equal(t, "req-001", ids.Next())
}

func TestSequentialIDs_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "req-001", NewSequentialIDs("").Next())
}

func TestSequentialIDs_ThreadSafe(t *testing.T) {
	ids := NewSequentialIDs("t")
	const numGoroutines = 50
	const callsPerGoroutine = 20

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				id := ids.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, numGoroutines*callsPerGoroutine)
	assert.Equal(t, numGoroutines*callsPerGoroutine, ids.Count())
}

func TestFixedID(t *testing.T) {
	gen := FixedID("fixed")
	assert.Equal(t, "fixed", gen())
	assert.Equal(t, "fixed", gen())
}
