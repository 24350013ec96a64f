// Package logging provides latchdb's structured logger.
//
// The package wraps [log/slog] behind a [Handle]: one Engine, one Handle,
// constructed by Engine.Open and closed by Engine.Close. There is no
// package-level logger — every subsystem that needs to log is handed the
// Engine's Handle (or built from a reference to it) rather than reaching
// for shared state, so two Engines opened in the same process never fight
// over a log file.
//
// # Opening a Handle
//
// Engine.Open calls Open for you when its Config carries a non-nil Logging
// field:
//
//	h, err := logging.Open(logging.Config{
//	    Level:      logging.LevelDebug,
//	    OutputPath: "/var/log/latchdb/engine.log",
//	    Format:     "json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
// Default returns a Handle that writes INFO-level text logs to stdout,
// used when a Config carries no Logging field at all.
//
// # Retrieving the logger
//
//	logger := h.Logger()
//	logger.Info("database opened", "name", dbName)
//
// # Context helpers
//
// Several methods return child loggers pre-populated with structured
// fields, reducing repetition in hot paths:
//
//	log := h.WithTx(tid)          // adds tx_id field
//	log := h.WithPage(pid)        // adds page_id field
//	log := h.WithComponent(name)  // adds component field
package logging
