package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	KB = 1024
	MB = KB * 1024
	GB = MB * 1024
)

// FormatBytes converts bytes to human-readable format using binary units,
// capped at GB.
func FormatBytes(bytes uint64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
