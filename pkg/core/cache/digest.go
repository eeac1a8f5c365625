package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestCache remembers the content digest last seen per file
type DigestCache struct {
	cache *Cache[string]
}

// NewDigestCache creates a digest cache
func NewDigestCache(cfg Config) *DigestCache {
	return &DigestCache{cache: New[string](cfg)}
}

// Digest returns the hex encoded SHA-256 of data
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Changed records the digest of data for path and reports whether it
// differs from the one recorded before
func (d *DigestCache) Changed(path string, data []byte) bool {
	digest := Digest(data)
	if prev, ok := d.cache.Get(path); ok && prev == digest {
		return false
	}
	d.cache.Set(path, digest)
	return true
}

// Forget drops the digest of path
func (d *DigestCache) Forget(path string) {
	d.cache.Delete(path)
}

// Close releases the cache
func (d *DigestCache) Close() {
	d.cache.Close()
}
