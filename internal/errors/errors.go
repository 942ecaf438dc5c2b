// Package errors defines the typed failures surfaced by the build pipeline.
package errors

import (
	"fmt"
	"strings"
)

// HookError reports a pre-build hook that exited non-zero or failed to spawn.
// It carries everything captured while the hook ran so the CLI can show the
// full output of the failing tool.
type HookError struct {
	Command  string
	Index    int // position in the configured hook sequence, 1-based
	Total    int
	ExitCode int
	// Lines holds every non-empty output line, stdout and stderr interleaved
	// by arrival order.
	Lines []string
	// Raw per-stream captures, kept separate for error reporting.
	Stdout []byte
	Stderr []byte
	Err    error // spawn or wait failure, nil for a plain non-zero exit
}

// Error implements the error interface.
func (e *HookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hook %d/%d (%s): %v", e.Index, e.Total, e.Command, e.Err)
	}
	return fmt.Sprintf("hook %d/%d (%s) failed with exit code %d", e.Index, e.Total, e.Command, e.ExitCode)
}

// Unwrap exposes the underlying spawn/wait error, if any.
func (e *HookError) Unwrap() error { return e.Err }

// Output returns the interleaved captured lines joined for display, or an
// empty string if the hook produced no output.
func (e *HookError) Output() string {
	return strings.Join(e.Lines, "\n")
}
