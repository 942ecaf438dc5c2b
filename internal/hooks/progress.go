package hooks

import (
	"fmt"
	"io"
	"sync"
)

// maxLineWidth bounds the width of each displayed output line.
const maxLineWidth = 80

// progress renders an in-place terminal display: a header line followed by
// up to recentLines of hook output, redrawn on every update with ANSI cursor
// movement. In plain mode (no TTY, --no-color) nothing is drawn; the runner's
// log lines are the only progress signal.
type progress struct {
	mu      sync.Mutex
	w       io.Writer
	plain   bool
	written int // lines currently on screen, to know how far to move up
}

func newProgress(w io.Writer, plain bool) *progress {
	return &progress{w: w, plain: plain}
}

func (p *progress) update(header string, lines []string) {
	if p.plain {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLocked()
	fmt.Fprintf(p.w, "\033[36m⟳\033[0m %s\n", header)
	p.written = 1
	for _, line := range lines {
		fmt.Fprintf(p.w, " %s\n", truncate(line))
		p.written++
	}
}

func (p *progress) finish(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.plain {
		return
	}
	p.clearLocked()
	fmt.Fprintf(p.w, "%s\n", msg)
	p.written = 0
}

// clearLocked moves the cursor back to the first drawn line and erases
// everything below it. Caller holds the mutex.
func (p *progress) clearLocked() {
	if p.written > 0 {
		fmt.Fprintf(p.w, "\033[%dA\033[J", p.written)
	}
}

// truncate caps a display line at maxLineWidth runes, marking the cut with
// an ellipsis.
func truncate(line string) string {
	runes := []rune(line)
	if len(runes) <= maxLineWidth {
		return line
	}
	return string(runes[:maxLineWidth-3]) + "..."
}
