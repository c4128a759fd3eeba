package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCacheFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCache_GetOrLoad(t *testing.T) {
	path := writeCacheFile(t, "person.value.json", `{"typeName":"Person"}`)

	cache := NewCache[string]()
	loads := 0
	load := func() (string, error) {
		loads++
		return fmt.Sprintf("load-%d", loads), nil
	}

	first, err := cache.GetOrLoad(path, load)
	require.NoError(t, err)
	second, err := cache.GetOrLoad(path, load)
	require.NoError(t, err)

	assert.Equal(t, "load-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, loads)

	value, ok := cache.Get(path)
	require.True(t, ok)
	assert.Equal(t, "load-1", value)
}

func TestCache_FailedLoadsAreNotCached(t *testing.T) {
	path := writeCacheFile(t, "person.value.yaml", "typeName: Person\n")
	cache := NewCache[int]()

	_, err := cache.GetOrLoad(path, func() (int, error) {
		return 0, fmt.Errorf("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 0, cache.Size())

	_, err = cache.GetOrLoad(filepath.Join(t.TempDir(), "missing.yaml"), func() (int, error) {
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Size(), "files that do not exist are never cached")
}

func TestCache_ModifiedFileIsReloaded(t *testing.T) {
	path := writeCacheFile(t, "person.value.yaml", "typeName: Person\n")
	cache := NewCache[string]()

	_, err := cache.GetOrLoad(path, func() (string, error) { return "Person", nil })
	require.NoError(t, err)

	// rewrite with a different size and a later mtime
	require.NoError(t, os.WriteFile(path, []byte("typeName: RMPerson\n"), 0644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	_, ok := cache.Get(path)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())

	value, err := cache.GetOrLoad(path, func() (string, error) { return "RMPerson", nil })
	require.NoError(t, err)
	assert.Equal(t, "RMPerson", value)
}

func TestCache_Invalidate(t *testing.T) {
	first := writeCacheFile(t, "a.value.yaml", "a")
	second := writeCacheFile(t, "b.value.yaml", "b")
	cache := NewCache[string]()

	for _, path := range []string{first, second} {
		_, err := cache.GetOrLoad(path, func() (string, error) { return path, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 2, cache.Size())

	cache.Invalidate(first)
	_, ok := cache.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Size())

	cache.Invalidate(second)
	assert.Equal(t, 0, cache.Size())
}

func TestCache_ConcurrentLoads(t *testing.T) {
	path := writeCacheFile(t, "person.value.yaml", "typeName: Person\n")
	cache := NewCache[string]()

	var loads atomic.Int32
	release := make(chan struct{})
	load := func() (string, error) {
		loads.Add(1)
		<-release
		return "Person", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := cache.GetOrLoad(path, load)
			assert.NoError(t, err)
			results[i] = value
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, value := range results {
		assert.Equal(t, "Person", value)
	}
	assert.LessOrEqual(t, loads.Load(), int32(8))
	assert.Equal(t, 1, cache.Size())
}
