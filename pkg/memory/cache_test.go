package memory

import (
	"testing"

	"latchdb/pkg/primitives"
	"latchdb/pkg/storage/page"
)

func cpid(no uint64) page.ID {
	return page.ID{TableID: 1, PageNo: primitives.PageNumber(no)}
}

func TestGetMissingPage(t *testing.T) {
	c := NewLRUPageCache(2)
	if _, ok := c.Get(cpid(1)); ok {
		t.Error("empty cache should report a miss")
	}
}

func TestPutThenGet(t *testing.T) {
	c := NewLRUPageCache(2)
	pg := page.New(cpid(1))

	if err := c.Put(cpid(1), pg); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := c.Get(cpid(1))
	if !ok || got != pg {
		t.Error("Get should return the page just Put")
	}
}

func TestEvictsLRUWhenFull(t *testing.T) {
	c := NewLRUPageCache(2)
	c.Put(cpid(1), page.New(cpid(1)))
	c.Put(cpid(2), page.New(cpid(2)))

	// touch page 1 so page 2 becomes the LRU entry
	c.Get(cpid(1))

	if err := c.Put(cpid(3), page.New(cpid(3))); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if _, ok := c.Get(cpid(2)); ok {
		t.Error("page 2 should have been evicted as the least recently used entry")
	}
	if _, ok := c.Get(cpid(1)); !ok {
		t.Error("page 1 was touched more recently and should survive eviction")
	}
	if _, ok := c.Get(cpid(3)); !ok {
		t.Error("page 3 was just inserted and should be resident")
	}
}

func TestNoStealSkipsDirtyPages(t *testing.T) {
	c := NewLRUPageCache(2)
	tid := primitives.NewTransactionID()

	dirty := page.New(cpid(1))
	dirty.MarkDirty(tid)
	c.Put(cpid(1), dirty)
	c.Put(cpid(2), page.New(cpid(2)))

	if err := c.Put(cpid(3), page.New(cpid(3))); err != nil {
		t.Fatalf("Put should evict the clean page 2 and succeed: %v", err)
	}
	if _, ok := c.Get(cpid(1)); !ok {
		t.Error("the dirty page must never be evicted under NO-STEAL")
	}
	if _, ok := c.Get(cpid(2)); ok {
		t.Error("the clean page should have been evicted instead")
	}
}

func TestPutFailsWhenEverythingIsDirty(t *testing.T) {
	c := NewLRUPageCache(1)
	tid := primitives.NewTransactionID()

	dirty := page.New(cpid(1))
	dirty.MarkDirty(tid)
	if err := c.Put(cpid(1), dirty); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := c.Put(cpid(2), page.New(cpid(2))); err == nil {
		t.Error("Put should fail when every resident page is dirty and capacity is exhausted")
	}
	if c.Size() != 1 {
		t.Error("a failed Put must leave the cache unchanged")
	}
}

func TestUpdatingResidentPageDoesNotCountAgainstCapacity(t *testing.T) {
	c := NewLRUPageCache(1)
	c.Put(cpid(1), page.New(cpid(1)))

	replacement := page.New(cpid(1))
	if err := c.Put(cpid(1), replacement); err != nil {
		t.Fatalf("re-Put of a resident page should never need to evict: %v", err)
	}
	if c.Size() != 1 {
		t.Errorf("expected size 1, got %d", c.Size())
	}
}
