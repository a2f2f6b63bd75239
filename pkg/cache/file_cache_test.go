package cache_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeoblyv/spider/pkg/cache"
)

func writeFile(t *testing.T, path, content string, mtime time.Time) os.FileInfo {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	return fi
}

func TestFileCache_GetPut(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "en.json")
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	c := cache.NewFileCache[string](4)
	fi := writeFile(t, path, "v1", base)

	_, ok := c.Get(path, fi)
	assert.False(t, ok)

	c.Put(path, fi, "parsed v1")
	got, ok := c.Get(path, fi)
	require.True(t, ok)
	assert.Equal(t, "parsed v1", got)

	t.Run("modified file misses", func(t *testing.T) {
		fi2 := writeFile(t, path, "v2 longer", base.Add(time.Minute))
		_, ok := c.Get(path, fi2)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len(), "stale entry is dropped")
	})
}

func TestFileCache_Load(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "fr.lang")
	fi := writeFile(t, path, "a=b", time.Now())

	c := cache.NewFileCache[int](0)
	calls := 0
	build := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := c.Load(path, fi, build)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := c.Load(filepath.Join(dir, "other"), fi, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Len())
}

func TestFileCache_Eviction(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	c := cache.NewFileCache[string](2)

	infos := make(map[string]os.FileInfo)
	for _, name := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, name)
		infos[name] = writeFile(t, p, name, time.Now())
	}

	c.Put(filepath.Join(dir, "a"), infos["a"], "A")
	c.Put(filepath.Join(dir, "b"), infos["b"], "B")
	_, ok := c.Get(filepath.Join(dir, "a"), infos["a"])
	require.True(t, ok)

	c.Put(filepath.Join(dir, "c"), infos["c"], "C")

	_, ok = c.Get(filepath.Join(dir, "b"), infos["b"])
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.Get(filepath.Join(dir, "a"), infos["a"])
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestFileCache_RemoveClear(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	fi := writeFile(t, path, "x", time.Now())

	c := cache.NewFileCache[string](8)
	c.Put(path, fi, "x")
	assert.True(t, c.Remove(path))
	assert.False(t, c.Remove(path))

	c.Put(path, fi, "x")
	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestFileCache_Concurrent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	fi := writeFile(t, path, "x", time.Now())

	c := cache.NewFileCache[string](8)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Load(path, fi, func() (string, error) { return "x", nil })
			assert.NoError(t, err)
			assert.Equal(t, "x", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}

func TestStampOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cache.Stamp{}, cache.StampOf(nil))
}
