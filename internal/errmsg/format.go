// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad   Op = "load config"
	OpTimelineLoad Op = "load ad timeline"
	OpJournalOpen  Op = "open event journal"
	OpInitialize   Op = "initialize application"

	// Stream operations
	OpStreamRequest Op = "request stream"
	OpStreamBuild   Op = "build stream request"

	// Journal operations
	OpJournalWrite Op = "write journal entry"
	OpJournalRead  Op = "read journal"
	OpJournalPrune Op = "prune journal"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
