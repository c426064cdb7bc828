package models

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when the payload format changes.
const cacheSchemaVersion uint16 = 1

// Cache memoizes parsed IDE tables on disk, keyed by the sha256 of the
// definition file. Safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Names  []string
	IDs    []uint32
}

// OpenCache initializes a disk cache under the standard cache location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "models")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// OpenCacheAt initializes a disk cache rooted at an explicit directory.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Get returns the cached table for key, if present and decodable.
func (c *Cache) Get(key [32]byte) (*Table, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion || len(payload.Names) != len(payload.IDs) {
		return nil, false
	}

	out := NewTable()
	for i, name := range payload.Names {
		out.Insert(name, payload.IDs[i])
	}
	return out, true
}

// Put serializes a table under key. A failed write leaves no partial file.
func (c *Cache) Put(key [32]byte, t *Table) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := t.Entries()
	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Names:  make([]string, 0, len(entries)),
		IDs:    make([]uint32, 0, len(entries)),
	}
	for _, e := range entries {
		payload.Names = append(payload.Names, e.Name)
		payload.IDs = append(payload.IDs, e.ID)
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return err
	}

	path := c.pathFor(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadIDECached behaves like LoadIDE but consults the cache first, keyed
// by the file's content hash. A nil cache falls back to plain parsing.
func LoadIDECached(cache *Cache, path string, out *Table) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Path: path, Msg: err.Error()}
	}
	key := sha256.Sum256(content)

	if cached, ok := cache.Get(key); ok {
		for _, e := range cached.Entries() {
			out.Insert(e.Name, e.ID)
		}
		return nil
	}

	parsed := NewTable()
	if err := LoadIDE(path, parsed); err != nil {
		return err
	}
	// Cache failures are not configuration errors; the parse result stands
	// either way.
	_ = cache.Put(key, parsed)
	for _, e := range parsed.Entries() {
		out.Insert(e.Name, e.ID)
	}
	return nil
}
