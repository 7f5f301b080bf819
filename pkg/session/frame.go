package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/match"
	"github.com/bastiangx/symserve/pkg/suggest"
)

// Sink receives a frame after every change to the visible state.
type Sink interface {
	Render(Frame)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Frame)

// Render calls f.
func (f SinkFunc) Render(fr Frame) { f(fr) }

// Item is one display row.
type Item struct {
	Full      string
	Qualifier string
	Name      string
	// QualifierPositions and NamePositions are rune indices into Qualifier and Name.
	QualifierPositions []int
	NamePositions      []int
	// Label is the whole highlighted full name.
	Label          string
	QualifierLabel string
	NameLabel      string
	// ShowQualifier is false for entities of the package being browsed.
	ShowQualifier bool
	Link          string
	QualifierLink string
	Kind          string
	KindLabel     string
	Builtin       bool
	Score         int
}

// Frame is the render state handed to a Sink.
type Frame struct {
	Query   string
	Items   []Item
	Cursor  int
	Found   int
	Shown   int
	Total   int
	Elapsed time.Duration
	Inline  bool
	// Order is the inline display order keyed by entity name, set in inline mode.
	Order map[string]int
}

// Selected returns the highlighted item, if any.
func (f Frame) Selected() (Item, bool) {
	if f.Cursor < 0 || f.Cursor >= len(f.Items) {
		return Item{}, false
	}
	return f.Items[f.Cursor], true
}

// Summary returns the timing line shown under the results.
func (f Frame) Summary() string {
	ms := float64(f.Elapsed.Microseconds()) / 1000
	return fmt.Sprintf("Time to search %.1f milliseconds (found %s/%s, displaying %s)",
		ms, utils.FormatWithCommas(f.Found), utils.FormatWithCommas(f.Total), utils.FormatWithCommas(f.Shown))
}

func newItem(r suggest.Ranked, scope, open, close string) Item {
	e := r.Entity
	it := Item{
		Full:      e.Full,
		Name:      e.Full,
		Label:     r.Highlighted,
		Link:      e.Link,
		Kind:      e.Kind.String(),
		KindLabel: e.KindLabel(),
		Builtin:   e.Builtin,
		Score:     r.Score,
	}

	qualifier, name, qualified := strings.Cut(e.Full, ".")
	if !qualified {
		it.NamePositions = r.Positions
		it.NameLabel = match.Highlight(e.Full, r.Positions, false, open, close)
		return it
	}

	// split positions around the separator; a matched '.' is dropped
	offset := len([]rune(qualifier)) + 1
	for _, p := range r.Positions {
		switch {
		case p < offset-1:
			it.QualifierPositions = append(it.QualifierPositions, p)
		case p >= offset:
			it.NamePositions = append(it.NamePositions, p-offset)
		}
	}

	it.Qualifier = qualifier
	it.Name = name
	it.QualifierLabel = match.Highlight(qualifier, it.QualifierPositions, false, open, close)
	it.NameLabel = match.Highlight(name, it.NamePositions, false, open, close)
	it.ShowQualifier = scope == "" || e.Package != scope
	it.QualifierLink = strings.TrimSuffix(e.Link, "/#"+e.Name)
	return it
}
