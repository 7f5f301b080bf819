/*
Package session drives one interactive search: query input, ranking, the
visible window and the selection cursor.

A Session is single-threaded. It owns its cursor and last query and shares
only the read-only ranker scope with other sessions.

	s := session.New(ranker, session.Options{Limit: suggest.GlobalLimit})
	s.SetSink(sink)
	s.Input("tolo")
	s.Key("Down")
	target, ok := s.Activate()

Every change to the visible state is pushed to the Sink as a Frame.
*/
package session

import (
	"strings"
	"time"

	"github.com/bastiangx/symserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Action reports what a key command did.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionActivate
	ActionCancel
	ActionFocus
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionActivate:
		return "activate"
	case ActionCancel:
		return "cancel"
	case ActionFocus:
		return "focus"
	}
	return "none"
}

// Options configures a Session.
type Options struct {
	// Limit caps the visible results; <= 0 shows every match.
	Limit int
	// Inline marks a per-package filter list; frames then carry Order.
	Inline bool
	// Scope is the package being browsed, empty for the global list.
	Scope          string
	HighlightOpen  string
	HighlightClose string
}

// Session holds the state of one search interaction.
type Session struct {
	ID string

	ranker    suggest.IRanker
	opts      Options
	sink      Sink
	lastQuery string
	page      suggest.Page
	order     map[string]int
	cursor    Cursor
	elapsed   time.Duration
}

// New creates a session ranking through r.
func New(r suggest.IRanker, opts Options) *Session {
	if opts.HighlightOpen == "" && opts.HighlightClose == "" {
		def := suggest.DefaultOptions()
		opts.HighlightOpen, opts.HighlightClose = def.HighlightOpen, def.HighlightClose
	}
	return &Session{ranker: r, opts: opts, cursor: NewCursor()}
}

// SetSink registers the render target. A nil sink disables rendering.
func (s *Session) SetSink(sink Sink) {
	s.sink = sink
}

// Input submits query text. Surrounding whitespace is ignored and
// resubmitting the current query is a no-op. Returns whether the
// results were recomputed.
func (s *Session) Input(text string) bool {
	query := strings.TrimSpace(text)
	if query == s.lastQuery {
		return false
	}
	s.lastQuery = query

	start := time.Now()
	ranked := s.ranker.Rank(query)
	s.page = suggest.Window(ranked, s.opts.Limit)
	if s.opts.Inline {
		s.order = suggest.InlineOrder(ranked)
	} else {
		s.order = nil
	}
	s.elapsed = time.Since(start)
	s.cursor.Reset(s.page.Shown)

	log.Debugf("Search %q: found=%d shown=%d elapsed=%v", query, s.page.Found, s.page.Shown, s.elapsed)
	s.render()
	return true
}

// Move steps the cursor by dir and re-renders.
func (s *Session) Move(dir int) {
	s.cursor.Move(dir)
	s.render()
}

// Activate returns the link of the selected result and ends the
// interaction. It does nothing when no row is selected.
func (s *Session) Activate() (string, bool) {
	if !s.cursor.Valid() {
		return "", false
	}
	target := s.page.Results[s.cursor.Index()].Entity.Link

	s.page = suggest.Page{}
	s.order = nil
	s.lastQuery = ""
	s.cursor.Reset(0)
	s.render()
	return target, true
}

// Cancel drops the selection but keeps the results.
func (s *Session) Cancel() {
	s.cursor.Clear()
	s.render()
}

// Key parses and applies a keyboard command.
func (s *Session) Key(spec string) (Action, string, error) {
	k, err := ParseKey(spec)
	if err != nil {
		return ActionNone, "", err
	}
	action, target := s.HandleKey(k)
	return action, target, nil
}

// HandleKey applies k. Modified keys are left to the caller, except the
// focus shortcut which is only reported.
func (s *Session) HandleKey(k Key) (Action, string) {
	if IsFocusShortcut(k) {
		return ActionFocus, ""
	}
	if k.Mods != ModNone {
		return ActionNone, ""
	}

	switch k.Name {
	case KeyDown:
		s.Move(+1)
		return ActionMove, ""
	case KeyUp:
		s.Move(-1)
		return ActionMove, ""
	case KeyEscape:
		s.Cancel()
		return ActionCancel, ""
	case KeyEnter:
		if target, ok := s.Activate(); ok {
			return ActionActivate, target
		}
	}
	return ActionNone, ""
}

// Query returns the last submitted query.
func (s *Session) Query() string {
	return s.lastQuery
}

// Cursor returns the selected row or -1.
func (s *Session) Cursor() int {
	return s.cursor.Index()
}

// Results returns the visible results.
func (s *Session) Results() []suggest.Ranked {
	return s.page.Results
}

// Frame builds the current render state.
func (s *Session) Frame() Frame {
	items := make([]Item, len(s.page.Results))
	for i, r := range s.page.Results {
		items[i] = newItem(r, s.opts.Scope, s.opts.HighlightOpen, s.opts.HighlightClose)
	}
	return Frame{
		Query:   s.lastQuery,
		Items:   items,
		Cursor:  s.cursor.Index(),
		Found:   s.page.Found,
		Shown:   s.page.Shown,
		Total:   len(s.ranker.Entities()),
		Elapsed: s.elapsed,
		Inline:  s.opts.Inline,
		Order:   s.order,
	}
}

func (s *Session) render() {
	if s.sink != nil {
		s.sink.Render(s.Frame())
	}
}
