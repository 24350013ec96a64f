package page

import (
	"fmt"

	"latchdb/pkg/primitives"
)

// ID is the identity of a page: the table it belongs to and its offset
// within that table's file. It is a plain comparable value so it can be
// used directly as a map key by the lock table, the cache, and the
// coordinator.
type ID struct {
	TableID primitives.TableID
	PageNo  primitives.PageNumber
}

func (id ID) String() string {
	return fmt.Sprintf("page(table=%d, no=%d)", id.TableID, id.PageNo)
}
