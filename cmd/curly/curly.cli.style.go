package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsatony/go-curly"
)

// diagnosticStyles colors syntax diagnostics written to stderr
type diagnosticStyles struct {
	headline lipgloss.Style
	caret    lipgloss.Style
	hint     lipgloss.Style
}

// newDiagnosticStyles binds styles to w. Writers that are not terminals
// get plain text.
func newDiagnosticStyles(w io.Writer, noColor bool) diagnosticStyles {
	if noColor {
		return diagnosticStyles{
			headline: lipgloss.NewStyle(),
			caret:    lipgloss.NewStyle(),
			hint:     lipgloss.NewStyle(),
		}
	}
	r := lipgloss.NewRenderer(w)
	return diagnosticStyles{
		headline: r.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true),
		caret:    r.NewStyle().Foreground(lipgloss.Color(ColorCaret)),
		hint:     r.NewStyle().Foreground(lipgloss.Color(ColorHint)),
	}
}

// render styles the lines of SyntaxError.Format: headline, source line,
// caret line, location and optional help
func (s diagnosticStyles) render(syntaxErr *curly.SyntaxError) string {
	lines := strings.Split(syntaxErr.Format(), FmtNewline)
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = s.headline.Render(line)
		case i == 2:
			lines[i] = s.caret.Render(line)
		case i > 2:
			lines[i] = s.hint.Render(line)
		}
	}
	return strings.Join(lines, FmtNewline)
}

// reportError prints err to stderr, with a caret diagnostic when it is a
// syntax error
func (a *app) reportError(msg string, err error) {
	if syntaxErr, ok := curly.AsSyntaxError(err); ok {
		fmt.Fprintf(a.stderr, FmtError, msg)
		fmt.Fprintln(a.stderr, a.styles.render(syntaxErr))
		return
	}
	fmt.Fprintf(a.stderr, FmtErrorWithCause, msg, err)
}
