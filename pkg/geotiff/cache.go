package geotiff

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ImageCache keeps decoded images in memory with least-recently-used
// eviction. Memory use is estimated from the size of the sample data.
//
// Concurrent requests for the same key share one load.
//
// Example:
//
//	cache := geotiff.NewImageCache(512 * 1024 * 1024) // 512MB
//	img, err := cache.Get(path, func() (*geotiff.GeoTiff, error) {
//	    return geotiff.Open(path)
//	})
type ImageCache struct {
	maxMemory  int64
	usedMemory int64
	images     map[string]*cacheEntry
	lru        *list.List // most recent at front
	uncached   int
	mu         sync.Mutex

	flight singleflight.Group
}

type cacheEntry struct {
	key          string
	image        *GeoTiff
	memorySize   int64
	element      *list.Element
	lastAccessed time.Time
	accessCount  int
}

// NewImageCache creates a cache limited to approximately maxMemoryBytes.
// Zero means unlimited.
func NewImageCache(maxMemoryBytes int64) *ImageCache {
	return &ImageCache{
		maxMemory: maxMemoryBytes,
		images:    make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get returns the cached image for key, or calls load and caches its result.
// Images larger than the cache limit are returned without being cached.
func (c *ImageCache) Get(key string, load func() (*GeoTiff, error)) (*GeoTiff, error) {
	if img, ok := c.lookup(key); ok {
		return img, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		img, err := load()
		if err != nil {
			return nil, err
		}
		if err := c.Add(key, img); err != nil {
			c.mu.Lock()
			c.uncached++
			c.mu.Unlock()
		}
		return img, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	return v.(*GeoTiff), nil
}

func (c *ImageCache) lookup(key string) (*GeoTiff, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.images[key]
	if !ok {
		return nil, false
	}
	entry.lastAccessed = time.Now()
	entry.accessCount++
	c.lru.MoveToFront(entry.element)
	return entry.image, true
}

// Add stores an image, evicting least-recently-used images to make room.
// It fails if the image alone exceeds the cache limit.
func (c *ImageCache) Add(key string, img *GeoTiff) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memSize := estimateImageMemory(img)

	if entry, ok := c.images[key]; ok {
		c.usedMemory += memSize - entry.memorySize
		entry.image = img
		entry.memorySize = memSize
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		return nil
	}

	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("image too large for cache (%d bytes > %d bytes max)", memSize, c.maxMemory)
	}
	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		key:          key,
		image:        img,
		memorySize:   memSize,
		lastAccessed: time.Now(),
		accessCount:  1,
	}
	entry.element = c.lru.PushFront(entry)
	c.images[key] = entry
	c.usedMemory += memSize
	return nil
}

// evictLRU removes the least recently used image. c.mu must be held.
func (c *ImageCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.images, entry.key)
	c.usedMemory -= entry.memorySize
}

// Remove drops an image from the cache.
func (c *ImageCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.images[key]; ok {
		c.lru.Remove(entry.element)
		delete(c.images, key)
		c.usedMemory -= entry.memorySize
	}
}

// Clear removes all images.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.images = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
	c.uncached = 0
}

// CacheStats holds cache metrics.
type CacheStats struct {
	ImageCount  int   // Images currently cached
	UsedMemory  int64 // Estimated memory use in bytes
	MaxMemory   int64 // Memory limit in bytes, 0 for unlimited
	TotalAccess int   // Accesses across all cached images
	Uncached    int   // Loads returned without caching because they exceeded MaxMemory
}

// Stats returns cache statistics.
func (c *ImageCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, entry := range c.images {
		total += entry.accessCount
	}
	return CacheStats{
		ImageCount:  len(c.images),
		UsedMemory:  c.usedMemory,
		MaxMemory:   c.maxMemory,
		TotalAccess: total,
		Uncached:    c.uncached,
	}
}

// estimateImageMemory is the sample storage plus a fixed overhead for
// metadata and the transformation.
func estimateImageMemory(img *GeoTiff) int64 {
	if img == nil {
		return 0
	}
	size := int64(1024)
	if img.data != nil {
		size += int64(img.data.Len()) * int64(img.data.Kind().Size())
	}
	return size
}
