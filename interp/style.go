package interp

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	savedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pathStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warnStyle.Render("warning:"), fmt.Sprintf(format, args...))
}

func saved(w io.Writer, path string) {
	fmt.Fprintln(w, savedStyle.Render("Output saved to"), pathStyle.Render("'"+path+"'"))
}
