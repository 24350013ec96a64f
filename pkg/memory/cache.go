// Package memory is the buffer layer: a capacity-bounded LRU page cache and
// the transaction coordinator that sits on top of it.
package memory

import (
	dberr "latchdb/pkg/error"
	"latchdb/pkg/storage/page"
)

// PageCache is a capacity-bounded mapping from page identity to resident
// page, with LRU recency ordering. It is responsible only for residency and
// eviction; it knows nothing about locks or transactions beyond the dirty
// flag carried on the pages it holds.
type PageCache interface {
	// Get returns the resident page for pid, moving it to the MRU end, or
	// (nil, false) if it isn't resident.
	Get(pid page.ID) (*page.Page, bool)

	// Put inserts pg as the MRU entry for pid. If the cache is already at
	// capacity, it first evicts the LRU-most clean page. If every resident
	// page is dirty, eviction — and therefore Put — fails with a Storage
	// error and the cache is left unchanged.
	Put(pid page.ID, pg *page.Page) error

	// Remove unlinks and drops pid. A no-op if pid isn't resident.
	Remove(pid page.ID)

	// Size reports the current number of resident pages.
	Size() int

	// GetAll returns every resident page ID, least-recently-used first.
	GetAll() []page.ID
}

// node is one entry in the intrusive recency list.
type node struct {
	pid  page.ID
	page *page.Page
	prev *node
	next *node
}

// LRUPageCache is a PageCache backed by a doubly linked list (for O(1)
// move-to-MRU) and a hash map (for O(1) lookup). It is not internally
// synchronized: the coordinator serializes every call under its own mutex.
type LRUPageCache struct {
	capacity int
	entries  map[page.ID]*node
	head     *node // sentinel; head.next is MRU
	tail     *node // sentinel; tail.prev is LRU
}

// NewLRUPageCache returns an empty cache holding at most capacity pages.
func NewLRUPageCache(capacity int) *LRUPageCache {
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.prev = head

	return &LRUPageCache{
		capacity: capacity,
		entries:  make(map[page.ID]*node),
		head:     head,
		tail:     tail,
	}
}

func (c *LRUPageCache) addToFront(n *node) {
	n.prev = c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRUPageCache) removeNode(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (c *LRUPageCache) moveToFront(n *node) {
	c.removeNode(n)
	c.addToFront(n)
}

func (c *LRUPageCache) Get(pid page.ID) (*page.Page, bool) {
	if n, ok := c.entries[pid]; ok {
		c.moveToFront(n)
		return n.page, true
	}
	return nil, false
}

func (c *LRUPageCache) Put(pid page.ID, pg *page.Page) error {
	if n, ok := c.entries[pid]; ok {
		n.page = pg
		c.moveToFront(n)
		return nil
	}

	if len(c.entries) >= c.capacity {
		if !c.evictClean() {
			return dberr.StorageDetail("Put", "all resident pages are dirty or none evictable, cannot evict (NO-STEAL policy)")
		}
	}

	n := &node{pid: pid, page: pg}
	c.entries[pid] = n
	c.addToFront(n)
	return nil
}

// evictClean scans from the LRU end toward MRU and drops the first clean
// page it finds. Dirty pages are never evicted under NO-STEAL: that is what
// makes abort-by-re-read correct without keeping a before-image around.
func (c *LRUPageCache) evictClean() bool {
	for n := c.tail.prev; n != c.head; n = n.prev {
		if n.page.Dirty() == nil {
			delete(c.entries, n.pid)
			c.removeNode(n)
			return true
		}
	}
	return false
}

func (c *LRUPageCache) Remove(pid page.ID) {
	if n, ok := c.entries[pid]; ok {
		delete(c.entries, pid)
		c.removeNode(n)
	}
}

func (c *LRUPageCache) Size() int {
	return len(c.entries)
}

func (c *LRUPageCache) GetAll() []page.ID {
	ids := make([]page.ID, 0, len(c.entries))
	for n := c.tail.prev; n != c.head; n = n.prev {
		ids = append(ids, n.pid)
	}
	return ids
}
