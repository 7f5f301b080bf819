package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/match"
	"github.com/bastiangx/symserve/pkg/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

var (
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"}).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
)

// TerminalSink renders session frames as a plain result list.
type TerminalSink struct {
	w          io.Writer
	width      int
	showTiming bool
	showKind   bool
}

// NewTerminalSink creates a sink on w. The width is detected when w is a terminal.
func NewTerminalSink(w io.Writer, showTiming, showKind bool) *TerminalSink {
	width := DefaultWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(f.Fd()) {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewTerminalSinkWithWidth(w, width, showTiming, showKind)
}

// NewTerminalSinkWithWidth creates a sink with a fixed width.
func NewTerminalSinkWithWidth(w io.Writer, width int, showTiming, showKind bool) *TerminalSink {
	return &TerminalSink{w: w, width: width, showTiming: showTiming, showKind: showKind}
}

// Render writes one line per item followed by the timing line.
func (t *TerminalSink) Render(f session.Frame) {
	if f.Query == "" {
		return
	}
	if len(f.Items) == 0 {
		fmt.Fprintln(t.w, mutedStyle.Render(fmt.Sprintf("No results for '%s'", f.Query)))
	}
	for i, it := range f.Items {
		fmt.Fprintln(t.w, t.row(it, i == f.Cursor))
	}
	if t.showTiming {
		fmt.Fprintln(t.w, mutedStyle.Render(f.Summary()))
	}
}

func (t *TerminalSink) row(it session.Item, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	plain := it.Name
	if it.ShowQualifier && it.Qualifier != "" {
		plain = it.Qualifier + "." + it.Name
	}
	kind := ""
	if t.showKind {
		kind = "  " + it.KindLabel
	}

	avail := t.width - len(marker) - len([]rune(kind))
	var label string
	if len([]rune(plain)) > avail {
		// highlighting is dropped for rows that do not fit
		label = utils.Truncate(plain, avail)
	} else {
		var b strings.Builder
		if it.ShowQualifier && it.Qualifier != "" {
			b.WriteString(styled(it.Qualifier, it.QualifierPositions))
			b.WriteString(".")
		}
		b.WriteString(styled(it.Name, it.NamePositions))
		label = b.String()
	}

	line := marker + label + mutedStyle.Render(kind)
	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

// styled renders the matched runs of s in the match style.
func styled(s string, positions []int) string {
	var b strings.Builder
	for i, seg := range match.Segments(s, positions) {
		if i%2 == 1 {
			b.WriteString(matchStyle.Render(seg))
			continue
		}
		b.WriteString(seg)
	}
	return b.String()
}
