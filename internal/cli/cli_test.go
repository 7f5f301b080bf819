package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/bastiangx/symserve/pkg/session"
	"github.com/bastiangx/symserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func newSession(t *testing.T, scope string) *session.Session {
	t.Helper()
	data := &corpus.Data{Packages: map[string]corpus.Package{
		"fmt": {Path: "/core/fmt", Entities: []corpus.RawEntity{
			{Name: "println", Kind: "p"},
			{Name: "printf", Kind: "p"},
		}},
		"strings": {Path: "/core/strings", Entities: []corpus.RawEntity{
			{Name: "to_lower", Kind: "p"},
		}},
	}}
	c, err := corpus.Build(data, corpus.Options{Package: scope})
	require.NoError(t, err)
	return session.New(suggest.NewRanker(c.Entities(), suggest.DefaultOptions()), session.Options{
		Limit: suggest.GlobalLimit,
		Scope: scope,
	})
}

func TestTerminalSinkRender(t *testing.T) {
	s := newSession(t, "")
	var out bytes.Buffer
	s.SetSink(NewTerminalSinkWithWidth(&out, 80, true, true))

	s.Input("tolo")
	lines := strings.Split(strings.TrimRight(plain(out.String()), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  strings.to_lower  procedure", lines[0])
	assert.Contains(t, lines[1], "found 1/3, displaying 1")

	out.Reset()
	s.Move(+1)
	assert.True(t, strings.HasPrefix(plain(out.String()), "> strings.to_lower"))
}

func TestTerminalSinkHidesOwnQualifier(t *testing.T) {
	s := newSession(t, "fmt")
	var out bytes.Buffer
	s.SetSink(NewTerminalSinkWithWidth(&out, 80, false, false))

	s.Input("println")
	assert.Equal(t, "  println\n", plain(out.String()))
}

func TestTerminalSinkNoResults(t *testing.T) {
	s := newSession(t, "")
	var out bytes.Buffer
	s.SetSink(NewTerminalSinkWithWidth(&out, 80, false, false))

	s.Input("zzz")
	assert.Equal(t, "No results for 'zzz'\n", plain(out.String()))
}

func TestTerminalSinkTruncates(t *testing.T) {
	s := newSession(t, "")
	var out bytes.Buffer
	s.SetSink(NewTerminalSinkWithWidth(&out, 10, false, false))

	s.Input("tolo")
	assert.Equal(t, "  strings…\n", plain(out.String()))
}

func TestStyledKeepsText(t *testing.T) {
	assert.Equal(t, "to_lower", plain(styled("to_lower", []int{0, 1, 3, 4})))
	assert.Equal(t, "len", plain(styled("len", nil)))
}

func TestInputHandler(t *testing.T) {
	s := newSession(t, "")
	var rendered bytes.Buffer
	s.SetSink(NewTerminalSinkWithWidth(&rendered, 80, false, false))

	in := strings.NewReader("print\n:down\n:down\n:up\n:bogus\n:key Hyper+K\n:enter\n")
	var out bytes.Buffer
	h := NewInputHandler(s, in, &out, "")
	require.NoError(t, h.Start())

	assert.Equal(t, "/core/fmt/#printf\n", out.String())
	assert.Equal(t, -1, s.Cursor())
	assert.Empty(t, s.Results())
}

func TestInputHandlerInitialQueryAndQuit(t *testing.T) {
	s := newSession(t, "")
	in := strings.NewReader(":q\ntolo\n")
	var out bytes.Buffer
	h := NewInputHandler(s, in, &out, "  print ")
	require.NoError(t, h.Start())

	assert.Equal(t, "print", s.Query())
	assert.Len(t, s.Results(), 2)
	assert.Empty(t, out.String())
}
