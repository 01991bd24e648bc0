package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// StatusLine is a single terminal line that is rewritten in place while a
// transfer runs, followed by a completion summary.
type StatusLine struct {
	mu       sync.Mutex
	out      io.Writer
	styles   Styles
	clearEOL bool
	dirty    bool
}

func NewStatusLine(w io.Writer) *StatusLine {
	if w == nil {
		w = os.Stdout
	}
	return &StatusLine{
		out:      w,
		styles:   NewStyles(w),
		clearEOL: isTerminal(w),
	}
}

func ProgressText(downloaded, total uint64) string {
	return fmt.Sprintf("Downloading [%s/%s]", FormatBytes(downloaded), FormatBytes(total))
}

// Update overwrites the current line with the transfer progress.
func (s *StatusLine) Update(downloaded, total uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := "\r" + ProgressText(downloaded, total)
	if s.clearEOL {
		line += "\033[K"
	}
	fmt.Fprint(s.out, line)
	s.dirty = true
}

// Finish terminates the live line so later output starts on a fresh one.
func (s *StatusLine) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out)
	s.dirty = false
}

// Summary prints the completion line for a finished transfer.
func (s *StatusLine) Summary(url, fileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, s.styles.Success.Render(fmt.Sprintf("Downloaded %s to %s", url, fileName)))
}

// Abort ends a live line, if any, without printing a summary.
func (s *StatusLine) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		fmt.Fprintln(s.out)
		s.dirty = false
	}
}
