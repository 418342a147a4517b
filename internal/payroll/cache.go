package payroll

import (
	"container/list"
	"sync"
	"time"
)

// ReportCache keeps aggregation results keyed by dataset fingerprint, with
// LRU eviction and a TTL.
type ReportCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type cacheEntry struct {
	key       string
	report    *Report
	expiresAt time.Time
}

func NewReportCache(maxSize int, ttl time.Duration) *ReportCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &ReportCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (c *ReportCache) Get(fingerprint string) (*Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[fingerprint]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.removeElement(elem)
		return nil, false
	}

	c.lru.MoveToFront(elem)
	return entry.report, true
}

func (c *ReportCache) Set(fingerprint string, report *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{
		key:       fingerprint,
		report:    report,
		expiresAt: c.now().Add(c.ttl),
	}

	if elem, ok := c.items[fingerprint]; ok {
		elem.Value = entry
		c.lru.MoveToFront(elem)
		return
	}

	c.items[fingerprint] = c.lru.PushFront(entry)

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *ReportCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *ReportCache) removeElement(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	delete(c.items, entry.key)
	c.lru.Remove(elem)
}
