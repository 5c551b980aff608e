package hasher

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketName = "hashes"
	hashSize   = sha256HexLen
	sha256HexLen = 64 // hex-encoded digest length
)

const keyVersion byte = 1

// Cache provides persistent caching of path/size/mtime-keyed content
// hashes using BoltDB, the same self-cleaning double-buffer pattern as
// the teacher's progressive-hash cache: every run opens the existing
// file read-only and builds a fresh write file of only the entries
// touched this run, atomically swapped in on Close.
type Cache struct {
	readDB  *bolt.DB
	writeDB *bolt.DB
	path    string
	enabled bool
}

// Open opens path for caching, or returns a disabled Cache if path is
// empty.
func Open(path string) (*Cache, error) {
	if path == "" {
		return &Cache{enabled: false}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	c := &Cache{path: path, enabled: true}

	if _, err := os.Stat(path); err == nil {
		if db, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: time.Second}); err == nil {
			c.readDB = db
		}
	}

	newPath := path + ".new"
	writeDB, err := bolt.Open(newPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("create new hash cache (locked by another instance?): %w", err)
	}
	c.writeDB = writeDB

	if err := c.writeDB.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Close closes both databases and, if the write database closed
// cleanly, atomically replaces the cache file with it.
func (c *Cache) Close() error {
	var firstErr error
	if c.readDB != nil {
		if err := c.readDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.writeDB != nil {
		if err := c.writeDB.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else if err := os.Rename(c.path+".new", c.path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// makeKey builds a deterministic cache key from path, size, and mtime:
// ver(1) + path + NUL + size(8) + mtimeNano(8) + kind(1 byte: 'p'refix
// or 'f'ull).
func makeKey(path string, size int64, mtime time.Time, kind byte) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(keyVersion)
	buf.WriteString(path)
	buf.WriteByte(0)
	_ = binary.Write(buf, binary.BigEndian, size)
	_ = binary.Write(buf, binary.BigEndian, mtime.UnixNano())
	buf.WriteByte(kind)
	return buf.Bytes()
}

func (c *Cache) lookup(key []byte) (string, bool) {
	if !c.enabled || c.readDB == nil {
		return "", false
	}
	var hash string
	_ = c.readDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		data := b.Get(key)
		if len(data) == hashSize {
			hash = string(data)
		}
		return nil
	})
	if hash == "" {
		return "", false
	}
	_ = c.store(key, hash)
	return hash, true
}

func (c *Cache) store(key []byte, hash string) error {
	if !c.enabled || c.writeDB == nil || len(hash) != hashSize {
		return nil
	}
	return c.writeDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Put(key, []byte(hash))
	})
}

// CachedPrefixHash is PrefixHash with an optional cache lookup keyed by
// path, size, and modification time.
func (c *Cache) CachedPrefixHash(path string, size int64, mtime time.Time) (string, error) {
	key := makeKey(path, size, mtime, 'p')
	if hash, ok := c.lookup(key); ok {
		return hash, nil
	}
	hash, err := PrefixHash(path)
	if err != nil {
		return "", err
	}
	_ = c.store(key, hash)
	return hash, nil
}

// CachedFullHash is FullHash with an optional cache lookup keyed by
// path, size, and modification time.
func (c *Cache) CachedFullHash(path string, size int64, mtime time.Time) (string, error) {
	key := makeKey(path, size, mtime, 'f')
	if hash, ok := c.lookup(key); ok {
		return hash, nil
	}
	hash, err := FullHash(path)
	if err != nil {
		return "", err
	}
	_ = c.store(key, hash)
	return hash, nil
}
