package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Unique(t *testing.T) {
	gen := NewSnowflake(1)

	seen := map[int64]bool{}
	for i := 0; i < 10000; i++ {
		id := gen.Generate()
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestGenerate_UniqueConcurrent(t *testing.T) {
	gen := NewSnowflake(2)

	var mu sync.Mutex
	seen := map[int64]bool{}
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				id := gen.Generate()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id %d", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestGenerate_Monotonic(t *testing.T) {
	gen := NewSnowflake(1)

	prev := gen.Generate()
	for i := 0; i < 1000; i++ {
		id := gen.Generate()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestEntityIDPrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(SessionID(), "sess_"))
	assert.True(t, strings.HasPrefix(TransactionID(), "txn_"))
	assert.NotEqual(t, SessionID(), SessionID())
}
