// Package page implements durable, fixed-size page I/O against a catalog of
// table files. It treats page contents as opaque bytes: schema and tuple
// layout are the heap-file layer's concern, not this one's.
package page

import (
	"latchdb/pkg/primitives"
)

// Size is the fixed page size in bytes. Every table file is a contiguous
// sequence of Size-byte pages starting at offset 0.
const Size = 4096

// Page is a fixed-size mutable byte image plus the bookkeeping the
// coordinator needs to enforce NO-STEAL/FORCE: an identity and a dirty flag
// naming the transaction that last wrote it (nil means clean). Only the
// coordinator mutates a Page; callers that receive one from GetPage own it
// for the lifetime of their lock on it.
type Page struct {
	id    ID
	data  [Size]byte
	dirty *primitives.TransactionID
}

// New returns a zero-filled page with the given identity.
func New(id ID) *Page {
	return &Page{id: id}
}

// NewFromBytes returns a page with the given identity whose contents are
// copied from data. len(data) must be Size.
func NewFromBytes(id ID, data []byte) *Page {
	p := &Page{id: id}
	copy(p.data[:], data)
	return p
}

func (p *Page) ID() ID { return p.id }

// Data returns the page's live byte image. Mutations through the returned
// slice are visible to subsequent reads and to the next flush.
func (p *Page) Data() []byte { return p.data[:] }

// Dirty returns the transaction that last dirtied this page, or nil if the
// page is clean.
func (p *Page) Dirty() *primitives.TransactionID { return p.dirty }

// MarkDirty records tid as the page's dirtier. Passing nil marks the page
// clean, which happens after a successful flush.
func (p *Page) MarkDirty(tid *primitives.TransactionID) { p.dirty = tid }
