package magetasks

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dkoosis/ansifold/internal/detect"
	"github.com/dkoosis/ansifold/pkg/layout"
)

// Out receives all task output.
var Out io.Writer = os.Stdout

type status struct {
	icon  string
	color lipgloss.Color
}

var (
	statusSuccess = status{icon: "\u2705", color: "2"}
	statusWarning = status{icon: "\u26a0\ufe0f ", color: "3"}
	statusError   = status{icon: "\u274c", color: "1"}
	statusInfo    = status{icon: "\u2139\ufe0f ", color: "4"}
)

func renderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(Out)
	if !detect.SupportsStyling(Out) {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// PrintH1Header prints a centred title between rules.
func PrintH1Header(title string) {
	width := detect.Width(Out)
	rule := strings.Repeat("=", width)
	heading := renderer().NewStyle().Bold(true).Width(width).Align(lipgloss.Center).Render(title)
	fmt.Fprintf(Out, "\n%s\n%s\n%s\n\n", rule, heading, rule)
}

// PrintH2Header prints a section header.
func PrintH2Header(title string) {
	heading := renderer().NewStyle().Bold(true).Render("=== " + title + " ===")
	fmt.Fprintf(Out, "\n%s\n\n", heading)
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) { printStatus(statusSuccess, msg) }

// PrintWarning prints a warning message.
func PrintWarning(msg string) { printStatus(statusWarning, msg) }

// PrintError prints an error message.
func PrintError(msg string) { printStatus(statusError, msg) }

// PrintInfo prints an info message.
func PrintInfo(msg string) { printStatus(statusInfo, msg) }

// printStatus wraps msg to the terminal behind the icon, continuation lines
// aligned with the text.
func printStatus(s status, msg string) {
	msg = renderer().NewStyle().Foreground(s.color).Render(msg)
	indent := s.icon + " "
	lines, err := layout.Lines(msg, layout.Options{
		Width:           layout.Int(detect.Width(Out)),
		FirstLineIndent: layout.String(indent),
		HangingIndent:   layout.String(strings.Repeat(" ", layout.Width(indent))),
		Filler:          layout.String(""),
		Styling:         layout.Bool(detect.SupportsStyling(Out)),
	})
	if err != nil {
		fmt.Fprintln(Out, indent+msg)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(Out, line)
	}
}
