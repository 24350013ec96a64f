package error

import "errors"

// The core surfaces exactly three error kinds; everything else is an
// implementation detail. No kind is recovered inside the core — all are
// surfaced with enough context for the caller to abort or retry at its own
// level.

const (
	// KindAborted identifies a deadlock-victim abort. The requesting
	// transaction must unwind; locks it already held remain until its
	// caller invokes transactionComplete(tid, commit=false). Recovery is
	// retrying the whole transaction under a fresh TransactionID, not the
	// same call.
	KindAborted Kind = iota

	// KindStorage identifies an I/O failure from the page store, or an
	// eviction failure because every resident page is dirty. Not resolved
	// by retrying the same request.
	KindStorage

	// KindInvalidRequest identifies a page request against an unregistered
	// table, or a schema mismatch surfaced by the heap-file layer. Fixable
	// by the caller without retrying as-is.
	KindInvalidRequest
)

// Aborted reports a deadlock-victim abort for the given operation.
func Aborted(operation, detail string) *DBError {
	err := New(KindAborted, "transaction aborted to break a deadlock")
	err.Detail = detail
	err.Operation = operation
	err.Component = "TransactionCoordinator"
	return err
}

// Storage wraps an I/O failure for the given operation. It routes through
// Wrap so that a cause already carrying its own DBError context (e.g. a
// failure that crossed a package boundary once already) is enriched in
// place rather than buried under a second layer.
func Storage(operation string, cause error) *DBError {
	return Wrap(cause, KindStorage, operation, "PageStore")
}

// StorageDetail reports a storage failure that has no underlying error,
// such as an eviction scan that found no clean page to reclaim.
func StorageDetail(operation, detail string) *DBError {
	err := New(KindStorage, "storage operation failed")
	err.Detail = detail
	err.Operation = operation
	err.Component = "PageCache"
	return err
}

// InvalidRequest reports a malformed or out-of-bounds request: a page
// belonging to no registered table, a schema mismatch, a nil argument.
func InvalidRequest(operation, detail string) *DBError {
	err := New(KindInvalidRequest, "invalid request")
	err.Detail = detail
	err.Operation = operation
	return err
}

// IsAborted reports whether err is (or wraps) an Aborted error.
func IsAborted(err error) bool { return hasKind(err, KindAborted) }

// IsStorage reports whether err is (or wraps) a Storage error.
func IsStorage(err error) bool { return hasKind(err, KindStorage) }

// IsInvalidRequest reports whether err is (or wraps) an InvalidRequest error.
func IsInvalidRequest(err error) bool { return hasKind(err, KindInvalidRequest) }

func hasKind(err error, kind Kind) bool {
	for err != nil {
		if dbErr, ok := err.(*DBError); ok && dbErr.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
