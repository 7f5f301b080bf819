// Package cli handles an interactive search session on the command line for debugging and testing
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/symserve/pkg/session"
	"github.com/charmbracelet/log"
)

// commandPrefix marks input lines that are key commands instead of queries.
const commandPrefix = ":"

// InputHandler drives a session from line based input.
// Plain lines are submitted as queries. Lines starting with ':' are
// commands: :down, :up, :enter, :esc, :key <spec> and :q.
type InputHandler struct {
	session *session.Session
	in      io.Reader
	out     io.Writer
	initial string
}

// NewInputHandler creates a handler for s. Frames are rendered by the
// sink registered on s; activation targets are written to out.
func NewInputHandler(s *session.Session, in io.Reader, out io.Writer, initialQuery string) *InputHandler {
	return &InputHandler{
		session: s,
		in:      in,
		out:     out,
		initial: initialQuery,
	}
}

// Start runs the input loop until the input ends or :q is entered.
func (h *InputHandler) Start() error {
	log.Print("SymServe CLI [BETA]")
	log.Print("type a query and press Enter, :down/:up to move, :enter to open, :q to exit")

	if h.initial != "" {
		h.session.Input(h.initial)
	}

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, commandPrefix) {
			h.session.Input(line)
			continue
		}
		quit, err := h.handleCommand(strings.TrimPrefix(line, commandPrefix))
		if err != nil {
			log.Errorf("%v", err)
			continue
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// handleCommand applies one ':' command and reports whether to quit.
func (h *InputHandler) handleCommand(cmd string) (bool, error) {
	name, arg, _ := strings.Cut(cmd, " ")
	spec := ""
	switch strings.ToLower(name) {
	case "q", "quit", "exit":
		return true, nil
	case "down", "j":
		spec = session.KeyDown
	case "up", "k":
		spec = session.KeyUp
	case "enter", "open":
		spec = session.KeyEnter
	case "esc", "cancel":
		spec = session.KeyEscape
	case "key":
		spec = strings.TrimSpace(arg)
	default:
		return false, fmt.Errorf("unknown command: %s", name)
	}

	action, target, err := h.session.Key(spec)
	if err != nil {
		return false, err
	}
	log.Debugf("Key %q: %s", spec, action)

	switch action {
	case session.ActionActivate:
		fmt.Fprintln(h.out, target)
	case session.ActionFocus:
		log.Print("focus: type a query")
	case session.ActionNone:
		log.Debugf("Key %q ignored", spec)
	}
	return false, nil
}
