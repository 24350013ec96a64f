// Package heap defines the heap-file contract the transaction coordinator
// consumes but does not implement. The on-disk tuple layout, slot format,
// and schema are owned entirely by this external layer; the coordinator
// only ever sees dirtied *page.Page values and opaque Tuple values.
package heap

import (
	"latchdb/pkg/primitives"
	"latchdb/pkg/storage/page"
)

// Tuple is the minimal shape the coordinator needs from a row owned by the
// heap-file layer: enough to locate the page a delete must touch.
type Tuple interface {
	// RecordPageID names the page this tuple currently lives on.
	RecordPageID() page.ID
}

// PageFetcher is the callback surface a File uses to pin and read pages
// while it searches for space to insert into. The coordinator implements
// this; a File never talks to the page store or cache directly.
type PageFetcher interface {
	GetPage(tid *primitives.TransactionID, pid page.ID, perm primitives.Permission) (*page.Page, error)
}

// File is a single table's heap file: the external collaborator that owns
// tuple layout and slot management. AddTuple is expected to scan candidate
// pages from page 0 upward via fetcher.GetPage(..., READ_WRITE), extending
// through the page store when no resident page has free space, and to
// return every page it dirtied in the process. DeleteTuple removes t's slot
// from the already-fetched, already-locked page pg.
type File interface {
	TableID() primitives.TableID
	AddTuple(tid *primitives.TransactionID, fetcher PageFetcher, t Tuple) ([]*page.Page, error)
	DeleteTuple(pg *page.Page, t Tuple) error
}
