// Package thumbs prefetches video thumbnails into a shared cache and serves them back.
package thumbs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Image is a cached thumbnail.
type Image struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Cache stores thumbnails by source URL.
type Cache interface {
	Get(src string) (*Image, bool, error)
	Set(src string, img *Image) error
}

// Key is the cache key for a source URL.
func Key(src string) string {
	sum := sha256.Sum256([]byte(src))
	return "thumb:" + hex.EncodeToString(sum[:])
}

// MemcachedCache keeps thumbnails in memcached.
type MemcachedCache struct {
	client *memcache.Client
	ttl    time.Duration
}

func NewMemcachedCache(servers []string, ttl time.Duration) *MemcachedCache {
	client := memcache.New(servers...)
	client.Timeout = 500 * time.Millisecond
	return &MemcachedCache{client: client, ttl: ttl}
}

func (c *MemcachedCache) Get(src string) (*Image, bool, error) {
	item, err := c.client.Get(Key(src))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var img Image
	if err := json.Unmarshal(item.Value, &img); err != nil {
		return nil, false, err
	}
	return &img, true, nil
}

func (c *MemcachedCache) Set(src string, img *Image) error {
	data, err := json.Marshal(img)
	if err != nil {
		return err
	}
	return c.client.Set(&memcache.Item{
		Key:        Key(src),
		Value:      data,
		Expiration: int32(c.ttl / time.Second),
	})
}

// MemoryCache is an unbounded in-process Cache used when memcached is not configured.
type MemoryCache struct {
	mu     sync.RWMutex
	images map[string]*Image
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{images: make(map[string]*Image)}
}

func (c *MemoryCache) Get(src string) (*Image, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[Key(src)]
	return img, ok, nil
}

func (c *MemoryCache) Set(src string, img *Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[Key(src)] = img
	return nil
}
