// Package lock implements page-granularity two-phase locking: per-page lock
// state, per-transaction holds/wants bookkeeping, and the waits-for graph
// used for deadlock detection.
//
// Nothing in this package is internally synchronized. LockTable is mutated
// exclusively by the coordinator under its single mutex (see pkg/memory);
// that is what makes "build the waits-for graph, then block" a single
// atomic step instead of two racing ones.
package lock

import (
	"latchdb/pkg/primitives"
	"latchdb/pkg/storage/page"
)

// entry is the lock state for one page: either one exclusive holder, or a
// set of shared holders, never both at once.
type entry struct {
	exclusive *primitives.TransactionID
	shared    map[*primitives.TransactionID]bool
}

func (e *entry) holders() []*primitives.TransactionID {
	if e.exclusive != nil {
		return []*primitives.TransactionID{e.exclusive}
	}
	holders := make([]*primitives.TransactionID, 0, len(e.shared))
	for tid := range e.shared {
		holders = append(holders, tid)
	}
	return holders
}

func (e *entry) empty() bool {
	return e.exclusive == nil && len(e.shared) == 0
}

// want records the single outstanding lock request for a transaction. A
// transaction blocks on at most one request at a time.
type want struct {
	pid  page.ID
	mode primitives.Permission
}

// LockTable is per-page lock state plus the holds/wants maps the waits-for
// graph is built from.
type LockTable struct {
	entries map[page.ID]*entry
	holds   map[*primitives.TransactionID]map[page.ID]primitives.Permission
	wants   map[*primitives.TransactionID]want
}

// New returns an empty LockTable.
func New() *LockTable {
	return &LockTable{
		entries: make(map[page.ID]*entry),
		holds:   make(map[*primitives.TransactionID]map[page.ID]primitives.Permission),
		wants:   make(map[*primitives.TransactionID]want),
	}
}

// CanGrant reports whether tid's request for mode on pid can be satisfied
// right now: reentrance, READ_ONLY/READ_ONLY compatibility, or the
// sole-shared-holder upgrade case.
func (lt *LockTable) CanGrant(tid *primitives.TransactionID, pid page.ID, mode primitives.Permission) bool {
	e, ok := lt.entries[pid]
	if !ok || e.empty() {
		return true
	}

	if e.exclusive != nil {
		return e.exclusive == tid
	}

	if mode == primitives.ReadOnly {
		return true
	}

	// mode == ReadWrite: granted only if tid is the sole shared holder.
	if len(e.shared) == 1 && e.shared[tid] {
		return true
	}
	return false
}

// Grant records pid as locked by tid in mode, assuming CanGrant already
// returned true. A ReadWrite grant against an entry where tid is the sole
// shared holder converts that entry to Exclusive(tid) in place — the
// upgrade path.
func (lt *LockTable) Grant(tid *primitives.TransactionID, pid page.ID, mode primitives.Permission) {
	e, ok := lt.entries[pid]
	if !ok {
		e = &entry{shared: make(map[*primitives.TransactionID]bool)}
		lt.entries[pid] = e
	}

	switch mode {
	case primitives.ReadOnly:
		if e.exclusive == tid {
			break // already holds stronger; reentrant read is a no-op
		}
		e.shared[tid] = true
	case primitives.ReadWrite:
		delete(e.shared, tid)
		e.exclusive = tid
	}

	lt.recordHold(tid, pid, lt.strongestMode(e, tid))
}

func (lt *LockTable) strongestMode(e *entry, tid *primitives.TransactionID) primitives.Permission {
	if e.exclusive == tid {
		return primitives.ReadWrite
	}
	return primitives.ReadOnly
}

func (lt *LockTable) recordHold(tid *primitives.TransactionID, pid page.ID, mode primitives.Permission) {
	pages, ok := lt.holds[tid]
	if !ok {
		pages = make(map[page.ID]primitives.Permission)
		lt.holds[tid] = pages
	}
	pages[pid] = mode
}

// Holds reports whether tid holds at least mode on pid.
func (lt *LockTable) Holds(tid *primitives.TransactionID, pid page.ID, mode primitives.Permission) bool {
	pages, ok := lt.holds[tid]
	if !ok {
		return false
	}
	held, ok := pages[pid]
	if !ok {
		return false
	}
	return held == primitives.ReadWrite || held == mode
}

// HeldPages returns every page tid currently holds a lock on.
func (lt *LockTable) HeldPages(tid *primitives.TransactionID) []page.ID {
	pages, ok := lt.holds[tid]
	if !ok {
		return nil
	}
	ids := make([]page.ID, 0, len(pages))
	for pid := range pages {
		ids = append(ids, pid)
	}
	return ids
}

// Release removes tid from pid's entry, in whichever role it holds. A no-op
// if tid does not hold pid.
func (lt *LockTable) Release(tid *primitives.TransactionID, pid page.ID) {
	if e, ok := lt.entries[pid]; ok {
		if e.exclusive == tid {
			e.exclusive = nil
		}
		delete(e.shared, tid)
		if e.empty() {
			delete(lt.entries, pid)
		}
	}

	if pages, ok := lt.holds[tid]; ok {
		delete(pages, pid)
		if len(pages) == 0 {
			delete(lt.holds, tid)
		}
	}
}

// ReleaseAll releases every page tid holds and returns the affected page
// IDs. Safe to call on a transaction holding nothing; returns nil.
func (lt *LockTable) ReleaseAll(tid *primitives.TransactionID) []page.ID {
	pages := lt.HeldPages(tid)
	for _, pid := range pages {
		lt.Release(tid, pid)
	}
	return pages
}

// Want records tid's single outstanding request.
func (lt *LockTable) Want(tid *primitives.TransactionID, pid page.ID, mode primitives.Permission) {
	lt.wants[tid] = want{pid: pid, mode: mode}
}

// ClearWant removes tid's outstanding request, if any.
func (lt *LockTable) ClearWant(tid *primitives.TransactionID) {
	delete(lt.wants, tid)
}

// HoldersExcept returns the holders of pid relevant to mode, excluding tid
// itself: for READ_WRITE, every holder (exclusive or shared); for
// READ_ONLY, the exclusive holder only, if any. This is exactly the edge
// set the waits-for graph adds for one waiting transaction.
func (lt *LockTable) HoldersExcept(tid *primitives.TransactionID, pid page.ID, mode primitives.Permission) []*primitives.TransactionID {
	e, ok := lt.entries[pid]
	if !ok {
		return nil
	}

	var holders []*primitives.TransactionID
	if mode == primitives.ReadWrite {
		holders = e.holders()
	} else if e.exclusive != nil {
		holders = []*primitives.TransactionID{e.exclusive}
	}

	filtered := make([]*primitives.TransactionID, 0, len(holders))
	for _, h := range holders {
		if h != tid {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// Waiters returns every transaction currently blocked on a want, paired
// with what it wants.
func (lt *LockTable) Waiters() map[*primitives.TransactionID]want {
	return lt.wants
}

// Vertices returns every transaction with state in the lock table: holding
// something, wanting something, or both. This is the vertex set of the
// waits-for graph.
func (lt *LockTable) Vertices() []*primitives.TransactionID {
	seen := make(map[*primitives.TransactionID]bool, len(lt.holds)+len(lt.wants))
	for tid := range lt.holds {
		seen[tid] = true
	}
	for tid := range lt.wants {
		seen[tid] = true
	}
	vertices := make([]*primitives.TransactionID, 0, len(seen))
	for tid := range seen {
		vertices = append(vertices, tid)
	}
	return vertices
}
