package memory

import (
	"fmt"
	"sync"

	"latchdb/pkg/concurrency/lock"
	dberr "latchdb/pkg/error"
	"latchdb/pkg/heap"
	"latchdb/pkg/logging"
	"latchdb/pkg/primitives"
	"latchdb/pkg/storage/page"
)

// Config is the coordinator's sole tunable: the page-cache capacity, in
// 4096-byte frames.
type Config struct {
	CacheCapacity int
}

// Coordinator is the TransactionCoordinator: it orchestrates getPage,
// insertTuple, deleteTuple, and transactionComplete by composing the lock
// table, the waits-for graph, the page cache, and the page store under a
// single mutex.
//
// Every public method holds Coordinator's mutex for the duration of its
// critical section. The one exception is the wait inside GetPage's grant
// loop, which releases the mutex while suspended and reacquires it on
// wakeup — the only suspension point anywhere in this package.
type Coordinator struct {
	mu    sync.Mutex
	cond  *sync.Cond
	locks *lock.LockTable
	cache PageCache
	store *page.Store
	log   *logging.Handle
}

// NewCoordinator wires a Coordinator around an already-open page.Store,
// logging through the given Handle. An Engine constructs one Handle in
// Open and passes it to every Coordinator it builds, so the coordinator
// never reaches for package-level logging state.
func NewCoordinator(store *page.Store, cfg Config, log *logging.Handle) *Coordinator {
	c := &Coordinator{
		locks: lock.New(),
		cache: NewLRUPageCache(cfg.CacheCapacity),
		store: store,
		log:   log,
	}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// GetPage is the single entry point for page access. It records
// the want, runs a one-shot deadlock check, blocks until the lock table
// grants the request, then serves the page from cache or from the store,
// evicting if the cache is full.
func (c *Coordinator) GetPage(tid *primitives.TransactionID, pid page.ID, perm primitives.Permission) (*page.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.locks.Want(tid, pid, perm)

	if lock.Build(c.locks).HasCycle() {
		c.locks.ClearWant(tid)
		err := dberr.Aborted("GetPage", fmt.Sprintf("%s waiting for %s would close a cycle in the waits-for graph", tid, pid))
		c.log.WithError(err).Warn("deadlock detected, aborting requester", "tx", tid.String(), "page", pid.String())
		return nil, err
	}

	for !c.locks.CanGrant(tid, pid, perm) {
		c.cond.Wait()
	}

	c.locks.Grant(tid, pid, perm)
	c.locks.ClearWant(tid)

	if pg, ok := c.cache.Get(pid); ok {
		return pg, nil
	}

	pg, err := c.store.ReadPage(pid)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(pid, pg); err != nil {
		return nil, err
	}
	return pg, nil
}

// InsertTuple delegates to file's addTuple, which calls back into GetPage
// for every candidate page it considers, then marks every page it dirtied
// with tid.
//
// file.AddTuple is called without holding the coordinator mutex: it
// reenters the coordinator through GetPage for each candidate page, and
// GetPage takes the mutex itself.
func (c *Coordinator) InsertTuple(tid *primitives.TransactionID, file heap.File, t heap.Tuple) error {
	dirtied, err := file.AddTuple(tid, c, t)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pg := range dirtied {
		pg.MarkDirty(tid)
	}
	return nil
}

// DeleteTuple fetches the page named by t's RecordId with READ_WRITE,
// delegates slot removal to file, and marks the page dirty with tid.
func (c *Coordinator) DeleteTuple(tid *primitives.TransactionID, file heap.File, t heap.Tuple) error {
	pg, err := c.GetPage(tid, t.RecordPageID(), primitives.ReadWrite)
	if err != nil {
		return err
	}

	if err := file.DeleteTuple(pg, t); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	pg.MarkDirty(tid)
	return nil
}

// TransactionComplete implements commit and abort. On commit,
// every dirty page tid holds is force-written to the store before its
// locks are released. On abort, every such page is replaced in the cache
// by a fresh read from the store, discarding the transaction's mutations.
// Order matters: flush/revert must finish before ReleaseAll, or a
// subsequent transaction could observe partially-written state.
func (c *Coordinator) TransactionComplete(tid *primitives.TransactionID, commit bool) error {
	log := c.log.WithComponent("TransactionCoordinator")

	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.cond.Broadcast()

	for _, pid := range c.locks.HeldPages(tid) {
		pg, resident := c.cache.Get(pid)
		if !resident || pg.Dirty() == nil {
			continue
		}

		if commit {
			if err := c.store.WritePage(pg); err != nil {
				return err
			}
			pg.MarkDirty(nil)
			continue
		}

		fresh, err := c.store.ReadPage(pid)
		if err != nil {
			return err
		}
		if err := c.cache.Put(pid, fresh); err != nil {
			return err
		}
	}

	released := c.locks.ReleaseAll(tid)
	log.Debug("transaction complete", "tx", tid.String(), "commit", commit, "pages_released", len(released))
	return nil
}
