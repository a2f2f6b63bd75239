package cache

import (
	"container/list"
	"os"
	"sync"
	"time"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 128

// Stamp identifies one version of a file.
type Stamp struct {
	ModTime time.Time
	Size    int64
}

// StampOf returns the stamp of fi. A nil FileInfo yields the zero Stamp.
func StampOf(fi os.FileInfo) Stamp {
	if fi == nil {
		return Stamp{}
	}
	return Stamp{ModTime: fi.ModTime(), Size: fi.Size()}
}

func (s Stamp) equal(o Stamp) bool {
	return s.Size == o.Size && s.ModTime.Equal(o.ModTime)
}

type entry[V any] struct {
	path  string
	stamp Stamp
	value V
}

// FileCache is an LRU of values keyed by file path and validated by Stamp.
type FileCache[V any] struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
}

// NewFileCache creates a cache holding at most capacity entries.
func NewFileCache[V any](capacity int) *FileCache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FileCache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value cached for path if it was stored with the same
// stamp as fi. A stale entry is dropped.
func (c *FileCache[V]) Get(path string, fi os.FileInfo) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[path]
	if !ok {
		return zero, false
	}
	e := elem.Value.(*entry[V])
	if !e.stamp.equal(StampOf(fi)) {
		c.removeElement(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

// Put stores value for path stamped with fi.
func (c *FileCache[V]) Put(path string, fi os.FileInfo, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := StampOf(fi)
	if elem, ok := c.items[path]; ok {
		e := elem.Value.(*entry[V])
		e.stamp = stamp
		e.value = value
		c.order.MoveToFront(elem)
		return
	}

	c.items[path] = c.order.PushFront(&entry[V]{path: path, stamp: stamp, value: value})
	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Load returns the cached value for path or builds, stores and returns a
// new one. Build errors are returned as is and nothing is cached.
// Concurrent misses may build the same value more than once and the last
// writer wins.
func (c *FileCache[V]) Load(path string, fi os.FileInfo, build func() (V, error)) (V, error) {
	if v, ok := c.Get(path, fi); ok {
		return v, nil
	}
	v, err := build()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(path, fi, v)
	return v, nil
}

// Remove drops path from the cache and reports whether it was present.
func (c *FileCache[V]) Remove(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[path]
	if ok {
		c.removeElement(elem)
	}
	return ok
}

func (c *FileCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries.
func (c *FileCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Must be called with lock held.
func (c *FileCache[V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry[V]).path)
}
