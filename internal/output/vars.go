package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the palette bound to one renderer, so output sent to a pipe or
// buffer is rendered without escape codes.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color("37")), // dark green
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),  // red
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")), // yellow
	}
}

var StyleSymbols = map[string]string{
	"fail":    "✗",
	"warning": "!",
}

var stderrStyles = NewStyles(os.Stderr)

func PrintWarning(text string) {
	fmt.Fprintln(os.Stderr, stderrStyles.Warning.Render(StyleSymbols["warning"]+" "+text))
}
func PrintError(text string) {
	fmt.Fprintln(os.Stderr, stderrStyles.Error.Render(StyleSymbols["fail"]+" "+text))
}
