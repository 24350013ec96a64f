package logging

import (
	"errors"
	"fmt"
	"log/slog"

	dberr "latchdb/pkg/error"
)

// WithTx returns a logger with transaction context.
// Use this to automatically include transaction ID in all logs.
//
// Example:
//
//	log := h.WithTx(tid)
//	log.Info("starting operation")
//	log.Debug("processing", "rows", count)
func (h *Handle) WithTx(tid fmt.Stringer) *slog.Logger {
	return h.Logger().With("tx_id", tid.String())
}

// WithTable returns a logger with table context.
// Use this for catalog and table operations.
func (h *Handle) WithTable(tableID fmt.Stringer) *slog.Logger {
	return h.Logger().With("table", tableID.String())
}

// WithPage returns a logger with page context.
// Useful for buffer pool and storage operations.
func (h *Handle) WithPage(pid fmt.Stringer) *slog.Logger {
	return h.Logger().With("page_id", pid.String())
}

// WithLock returns a logger with lock context.
// Useful for concurrency and lock manager operations.
func (h *Handle) WithLock(tid, resource fmt.Stringer) *slog.Logger {
	return h.Logger().With("tx_id", tid.String(), "resource", resource.String())
}

// WithComponent returns a logger with component/subsystem context.
func (h *Handle) WithComponent(component string) *slog.Logger {
	return h.Logger().With("component", component)
}

// WithError returns a logger with error context. If err is (or wraps) a
// *error.DBError, its code and captured call stack are attached too, so a
// postmortem has both the structured log line and the stack that produced
// it without chasing down the original error value.
//
// Example:
//
//	log := h.WithError(err)
//	log.Error("operation failed", "operation", "insert")
func (h *Handle) WithError(err error) *slog.Logger {
	logger := h.Logger().With("error", err.Error())

	var dbErr *dberr.DBError
	if errors.As(err, &dbErr) {
		logger = logger.With("code", dbErr.Kind.Code())
		if stack := dbErr.FormatStack(); stack != "" {
			logger = logger.With("stack", stack)
		}
	}
	return logger
}
