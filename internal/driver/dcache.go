package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when DumpPayload format changes.
const dumpCacheSchemaVersion uint16 = 1

// DumpCache stores rendered debug dumps on disk, keyed by a digest of the
// function and the pass sequence that produced them. Thread-safe.
type DumpCache struct {
	mu  sync.RWMutex
	dir string
}

// DumpPayload is the cached artifact for one function.
type DumpPayload struct {
	Schema   uint16
	Function string   // module-qualified name
	Passes   []string // pipeline the dump was produced under
	Dump     string   // rendered text
}

// NewDumpCache opens (creating if needed) a cache rooted at dir.
func NewDumpCache(dir string) (*DumpCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dump cache dir: %w", err)
	}
	return &DumpCache{dir: dir}, nil
}

// DumpKey digests the identity of one cached dump.
func DumpKey(function string, passes []string) string {
	h := sha256.New()
	h.Write([]byte(function))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(passes, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *DumpCache) path(key string) string {
	return filepath.Join(c.dir, key+".dump")
}

// Put stores the payload under key, replacing any previous entry.
func (c *DumpCache) Put(key string, payload DumpPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = dumpCacheSchemaVersion

	tmp := c.path(key) + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, c.path(key))
}

// Get loads the payload stored under key. A missing entry or one written
// under a different schema reports ok=false.
func (c *DumpCache) Get(key string) (DumpPayload, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DumpPayload{}, false, nil
		}
		return DumpPayload{}, false, err
	}
	defer f.Close()

	var payload DumpPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return DumpPayload{}, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if payload.Schema != dumpCacheSchemaVersion {
		return DumpPayload{}, false, nil
	}
	return payload, true, nil
}
