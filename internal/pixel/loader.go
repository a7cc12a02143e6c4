package pixel

import (
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
)

// Cache provides thread-safe caching of decoded buffers to avoid redundant
// disk reads when the same sheet is analyzed repeatedly with different
// parameters.
//
// Entries are keyed by the exact path string handed to Load. Cached buffers
// remain in memory until Evict or Clear; long-running callers should clean
// up between batches.
type Cache struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
}

// NewCache creates an empty buffer cache ready for concurrent use.
func NewCache() *Cache {
	return &Cache{buffers: make(map[string]*Buffer)}
}

// Load retrieves a buffer from the cache or decodes it from disk.
//
// Decoding goes through imaging.Open, so PNG, JPEG, GIF, TIFF and BMP
// sources are accepted. The returned buffer is shared between callers and
// must be treated as read-only; stages that mutate must Clone first.
func (c *Cache) Load(path string) (*Buffer, error) {
	c.mu.RLock()
	if buf, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	buf := FromImage(img)

	c.mu.Lock()
	c.buffers[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Evict removes a single entry. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Clear drops every cached buffer.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*Buffer)
	c.mu.Unlock()
}
