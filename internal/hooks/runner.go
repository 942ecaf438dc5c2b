// Package hooks executes the configured pre-build shell commands.
//
// Hooks run strictly in order; hook N+1 never starts until hook N exited
// successfully, since hooks commonly depend on each other (install, then
// compile). While a hook runs, its most recent output lines are shown in a
// live progress display; on failure the full captured output is surfaced.
package hooks

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	bagerierrors "github.com/druskus20/bageri/internal/errors"
	"github.com/druskus20/bageri/internal/logging"
)

// recentLines is the size of the live display's ring buffer.
const recentLines = 5

// Runner executes hook sequences. Progress output goes to Out, which
// defaults to stderr.
type Runner struct {
	logger *logging.Logger
	out    io.Writer
	// plain disables the in-place terminal display; progress is then
	// reduced to log lines only.
	plain bool
}

// NewRunner creates a hook runner. The display is enabled only when out is a
// terminal and noColor is unset.
func NewRunner(logger *logging.Logger, out io.Writer, noColor bool) *Runner {
	if out == nil {
		out = os.Stderr
	}
	return &Runner{
		logger: logger.WithComponent("hooks"),
		out:    out,
		plain:  noColor || !isTerminal(out),
	}
}

// Run executes every command in order through the shell. The first failure
// aborts the sequence and is returned as a *errors.HookError carrying the
// full captured output. Hooks have no timeout; a hung hook blocks the build
// indefinitely.
func (r *Runner) Run(ctx context.Context, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	r.logger.Info("running pre-build hooks", "count", len(commands))

	for i, command := range commands {
		if err := r.runOne(ctx, command, i+1, len(commands)); err != nil {
			return err
		}
	}

	r.logger.Info("all pre-build hooks completed")
	return nil
}

// capture is the per-hook output state shared by the two stream readers and
// the waiting goroutine. The readers append concurrently, so every access
// goes through the mutex.
type capture struct {
	mu     sync.Mutex
	recent []string // ring buffer of the last recentLines non-empty lines
	all    []string // every non-empty line, stdout and stderr interleaved
}

func (c *capture) add(line string) (snapshot []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.all = append(c.all, line)
	if len(c.recent) >= recentLines {
		c.recent = c.recent[1:]
	}
	c.recent = append(c.recent, line)
	snapshot = make([]string, len(c.recent))
	copy(snapshot, c.recent)
	return snapshot
}

func (c *capture) lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.all))
	copy(out, c.all)
	return out
}

func (r *Runner) runOne(ctx context.Context, command string, index, total int) error {
	header := fmt.Sprintf("Running hook %d/%d: %s", index, total, command)
	display := newProgress(r.out, r.plain)
	display.update(header, nil)
	r.logger.Debug("starting hook", "hook", command, "index", index, "total", total)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &bagerierrors.HookError{Command: command, Index: index, Total: total, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &bagerierrors.HookError{Command: command, Index: index, Total: total, Err: err}
	}
	if err := cmd.Start(); err != nil {
		display.finish(fmt.Sprintf("Hook %d/%d failed to start", index, total))
		return &bagerierrors.HookError{Command: command, Index: index, Total: total, Err: err}
	}

	captured := &capture{}
	var rawStdout, rawStderr bytes.Buffer

	// One reader per stream: a blocking read on one pipe must never prevent
	// draining the other, or a full OS pipe buffer deadlocks the child.
	var wg sync.WaitGroup
	wg.Add(2)
	go r.readStream(stdout, &rawStdout, captured, display, header, &wg)
	go r.readStream(stderr, &rawStderr, captured, display, header, &wg)

	// Both readers must finish before the exit status is inspected so no
	// trailing output is lost.
	wg.Wait()
	err = cmd.Wait()

	if err != nil {
		display.finish(fmt.Sprintf("Hook %d/%d failed", index, total))

		hookErr := &bagerierrors.HookError{
			Command:  command,
			Index:    index,
			Total:    total,
			ExitCode: cmd.ProcessState.ExitCode(),
			Lines:    captured.lines(),
			Stdout:   rawStdout.Bytes(),
			Stderr:   rawStderr.Bytes(),
		}
		if _, ok := err.(*exec.ExitError); !ok {
			hookErr.Err = err
		}

		if out := hookErr.Output(); out != "" {
			r.logger.Error(nil, "hook output:\n"+out)
		}
		if rawStderr.Len() > 0 {
			r.logger.Error(nil, "hook stderr: "+rawStderr.String())
		}
		if rawStdout.Len() > 0 {
			r.logger.Error(nil, "hook stdout: "+rawStdout.String())
		}
		return hookErr
	}

	display.finish(fmt.Sprintf("Hook %d/%d completed", index, total))
	r.logger.Debug("hook completed", "hook", command)
	return nil
}

// readStream consumes one pipe line by line, recording raw bytes and
// feeding non-empty lines into the shared capture and the live display.
func (r *Runner) readStream(stream io.Reader, raw *bytes.Buffer, captured *capture, display *progress, header string, wg *sync.WaitGroup) {
	defer wg.Done()
	scanner := bufio.NewScanner(io.TeeReader(stream, raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		recent := captured.add(line)
		display.update(header, recent)
	}
}

// isTerminal reports whether w is attached to a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
