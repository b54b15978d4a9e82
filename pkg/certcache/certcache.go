// Package certcache is a bounded LRU remembering, by H_code, that a given
// verified bytecode range previously produced a validly-signed certificate.
// A Run call whose trailer carries the same (H_code, pubkey, signature)
// triple as a cached entry skips the ECDSA verification; any other trailer
// is still verified in full.
// Grounded on the teacher's use of bounded in-memory caches via
// github.com/hashicorp/golang-lru for hot paths.
package certcache

import (
	lru "github.com/hashicorp/golang-lru"
)

// Entry is what gets cached per H_code: the verifier public key and
// signature bytes that were proven, at least once, to validly sign it. A
// later Run call presenting the identical (H_code, pubkey, signature)
// triple — the common case of one verified program replayed against many
// argument lists — can trust the cache instead of repeating the ECDSA
// verification.
type Entry struct {
	VerifierPub []byte
	Sig         []byte
}

// Cache wraps a hashicorp/golang-lru.Cache keyed by the raw 32-byte H_code
// digest.
type Cache struct {
	lru *lru.Cache
}

// New returns a Cache holding up to capacity entries.
func New(capacity int) (*Cache, error) {
	l, err := lru.New(capacity)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Get returns the cached Entry for hCode, if present.
func (c *Cache) Get(hCode [32]byte) (Entry, bool) {
	v, ok := c.lru.Get(hCode)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Put stores or refreshes the cached Entry for hCode.
func (c *Cache) Put(hCode [32]byte, e Entry) {
	c.lru.Add(hCode, e)
}

// Len reports the current number of cached entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
