package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"schemac/internal/project"
	"schemac/internal/schema"
)

// diskCacheSchemaVersion guards against decoding a payload written by an
// incompatible build; bump it whenever DiskPayload's shape changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores translated NodeSets on disk, keyed by a digest of the
// declaration fixture that produced them. Thread-safe for concurrent
// access from TranslateAll's worker goroutines.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk cache record for one translated declaration.
type DiskPayload struct {
	Schema  uint16
	Digest  project.Digest
	RootID  schema.NodeID
	NodeSet schema.NodeSet
}

// OpenDiskCache initializes a disk cache rooted at dir, creating it if
// necessary.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "nodes", hexKey+".mp")
}

// Put serializes and writes a NodeSet to the disk cache, keyed by digest.
func (c *DiskCache) Put(digest project.Digest, rootID schema.NodeID, set schema.NodeSet) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(digest)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Digest: digest, RootID: rootID, NodeSet: set}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a cached NodeSet, if one is present and was
// written by a compatible schema version.
func (c *DiskCache) Get(digest project.Digest) (schema.NodeSet, bool, error) {
	if c == nil {
		return schema.NodeSet{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(digest))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return schema.NodeSet{}, false, nil
		}
		return schema.NodeSet{}, false, err
	}
	defer func() { _ = f.Close() }()

	var payload DiskPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return schema.NodeSet{}, false, err
	}
	if payload.Schema != diskCacheSchemaVersion {
		return schema.NodeSet{}, false, nil
	}
	return payload.NodeSet, true, nil
}

// Clear invalidates the entire cache by renaming it aside and removing it.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// Stats reports how many cache entries currently exist on disk.
func (c *DiskCache) Stats() (count int, err error) {
	if c == nil {
		return 0, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(c.dir, "nodes"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache dir: %w", err)
	}
	return len(entries), nil
}
