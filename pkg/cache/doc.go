// Package cache holds values derived from files, such as parsed translation
// tables or compiled scripts, in a bounded LRU.
//
// Entries are keyed by file path and stamped with the file's modification
// time and size. A lookup with a different stamp is a miss, so an edited file
// is rebuilt on next use without any watcher. When the cache is full the
// least recently used entry is evicted.
//
//	c := cache.NewFileCache[*Table](64)
//	fi, _ := os.Stat(path)
//	tbl, err := c.Load(path, fi, func() (*Table, error) { return parse(path) })
//
// All methods are safe for concurrent use.
package cache
