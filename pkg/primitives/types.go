package primitives

// TableID identifies a table's backing file. It is derived by hashing the
// absolute filesystem path of the file (see Filepath.Hash), so two stores
// opened against the same path agree on identity without a central registry.
type TableID uint64

// PageNumber is the zero-based offset of a page within its table's file.
type PageNumber uint64

// Permission is the access mode a transaction requests when fetching a page.
type Permission int

const (
	// ReadOnly requests a shared lock: compatible with other ReadOnly holders.
	ReadOnly Permission = iota
	// ReadWrite requests an exclusive lock: incompatible with any other holder.
	ReadWrite
)

func (p Permission) String() string {
	switch p {
	case ReadOnly:
		return "READ_ONLY"
	case ReadWrite:
		return "READ_WRITE"
	default:
		return "UNKNOWN"
	}
}
