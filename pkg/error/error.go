package error

import (
	"fmt"
	"runtime"
	"strings"
)

// Kind is the closed set of error kinds this core raises. The teacher's
// general-purpose shape paired a free-form Code string with a separate
// Category enum, which lets a STORAGE code drift from ErrCategorySystem or
// leaves a Code with no matching constant at all. This core never needs
// that generality — there are exactly three kinds, declared in taxonomy.go
// as Aborted/Storage/InvalidRequest — so Kind fixes a kind's wire code and
// its handling posture as one value instead of two independently-settable
// fields.
type Kind int

// Code returns the wire-stable identifier for k, used in DBError.Error()
// and by the Is* predicates in taxonomy.go.
func (k Kind) Code() string {
	switch k {
	case KindAborted:
		return "ABORTED"
	case KindStorage:
		return "STORAGE"
	case KindInvalidRequest:
		return "INVALID_REQUEST"
	default:
		return "UNKNOWN"
	}
}

// DBError represents a structured database error with rich context information.
type DBError struct {
	// Kind identifies which of the three error kinds this is.
	Kind Kind

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides additional context about the specific error instance.
	// Example: "no table registered for id 7" where Message might be
	// "invalid request".
	Detail string

	// Operation identifies the operation that was being performed when the
	// error occurred. Examples: "GetPage", "RegisterTable", "Put".
	Operation string

	// Component identifies the system component where the error originated.
	// Examples: "PageStore", "TransactionCoordinator", "PageCache".
	Component string

	// Cause is the underlying error that triggered this database error.
	// This enables error chaining while preserving the original error context.
	Cause error

	// Stack contains the call stack where this error was created.
	// Used for debugging and is automatically captured in New() and Wrap().
	Stack []uintptr
}

// New creates a new DBError of the given kind with the given message.
func New(kind Kind, message string) *DBError {
	return &DBError{
		Kind:    kind,
		Message: message,
		Stack:   captureStack(),
	}
}

// Wrap wraps an existing error with database-specific context information.
// If the error is already a DBError, it enriches the existing error with
// operation and component context (only if not already set) and leaves its
// Kind alone — wrapping never overrides a kind a deeper layer already
// decided.
func Wrap(err error, kind Kind, operation, component string) *DBError {
	if err == nil {
		return nil
	}

	if dbErr, ok := err.(*DBError); ok {
		if dbErr.Operation == "" {
			dbErr.Operation = operation
		}
		if dbErr.Component == "" {
			dbErr.Component = component
		}
		return dbErr
	}

	return &DBError{
		Kind:      kind,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// captureStack captures the current call stack for debugging purposes.
// It skips 3 frames (runtime.Callers itself, captureStack, and New/Wrap), so
// the recorded stack starts at the function that called New or Wrap.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface.
//
// The format follows the pattern:
// [CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *DBError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Kind.Code(), e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with Go's standard error handling functions like errors.Is and errors.As.
func (e *DBError) Unwrap() error {
	return e.Cause
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *DBError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}
