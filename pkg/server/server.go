package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/symserve/internal/logger"
	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/config"
	"github.com/bastiangx/symserve/pkg/corpus"
	"github.com/bastiangx/symserve/pkg/session"
	"github.com/bastiangx/symserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const maxDecodeFailures = 3

var (
	errUnknownSession  = errors.New("unknown session")
	errTooManySessions = errors.New("session limit reached")
)

// scope is a corpus view with the ranker every session on it shares.
type scope struct {
	corpus *corpus.Corpus
	ranker *suggest.Ranker
}

// Server handles the IPC for search sessions
type Server struct {
	data     *corpus.Data
	config   *config.Config
	scopes   map[string]*scope
	sessions map[string]*session.Session
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	writer   *bufio.Writer
	log      *log.Logger
}

// NewServer creates a server over stdin/stdout
func NewServer(data *corpus.Data, cfg *config.Config) (*Server, error) {
	return NewServerWithIO(data, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(data *corpus.Data, cfg *config.Config, r io.Reader, w io.Writer) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	s := &Server{
		data:     data,
		config:   cfg,
		scopes:   make(map[string]*scope),
		sessions: make(map[string]*session.Session),
		decoder:  msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:  msgpack.NewEncoder(bw),
		writer:   bw,
		log:      logger.New("ipc"),
	}
	// the global scope is built eagerly so corpus errors surface at startup
	if _, err := s.scope(""); err != nil {
		return nil, err
	}
	return s, nil
}

// Start processes requests until the input is closed
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	s.send(StatusResponse{Status: "ready"})

	failures := 0
	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.log.Debug("Input closed, stopping server")
				return nil
			}
			failures++
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			if failures >= maxDecodeFailures {
				return fmt.Errorf("too many malformed requests: %w", err)
			}
			continue
		}
		failures = 0
		s.handleRequest(req)
	}
}

// handleRequest dispatches one request by operation
func (s *Server) handleRequest(req Request) {
	start := time.Now()

	switch req.Op {
	case "open":
		s.handleOpen(req, start)
	case "query":
		s.handleQuery(req, start)
	case "key":
		s.handleKey(req, start)
	case "close":
		s.handleClose(req)
	case "lookup":
		s.handleLookup(req)
	case "info":
		s.handleInfo(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case "":
		s.sendError(req.ID, "Missing 'op' field", 400)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleOpen(req Request, start time.Time) {
	if limit := s.config.Server.MaxSessions; limit > 0 && len(s.sessions) >= limit {
		s.sendError(req.ID, errTooManySessions.Error(), 429)
		return
	}

	pkg := ""
	switch req.Mode {
	case "", config.ModeGlobal:
	case config.ModePackage:
		if req.Package == "" {
			s.sendError(req.ID, "Package mode requires 'package'", 400)
			return
		}
		pkg = req.Package
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown mode: %s", req.Mode), 400)
		return
	}
	if !s.validQuery(req) {
		return
	}

	sc, err := s.scope(pkg)
	if err != nil {
		code := 500
		if errors.Is(err, corpus.ErrUnknownPackage) {
			code = 404
		}
		s.sendError(req.ID, err.Error(), code)
		return
	}

	limit := s.config.Limit()
	if req.Limit > 0 {
		limit = req.Limit
	}
	// inline filtering only exists for package pages
	inline := pkg != "" && (req.Inline || s.config.Search.Inline)
	if inline {
		limit = suggest.NoLimit
	}

	sess := session.New(sc.ranker, session.Options{
		Limit:          limit,
		Inline:         inline,
		Scope:          pkg,
		HighlightOpen:  s.config.Search.HighlightOpen,
		HighlightClose: s.config.Search.HighlightClose,
	})
	sess.ID = uuid.NewString()
	s.sessions[sess.ID] = sess
	s.log.Debugf("Opened session %s (scope=%q, limit=%d, inline=%v)", sess.ID, pkg, limit, inline)

	sess.Input(req.Query)
	s.send(s.frameResponse(req.ID, sess, start))
}

func (s *Server) handleQuery(req Request, start time.Time) {
	sess, ok := s.lookup(req)
	if !ok || !s.validQuery(req) {
		return
	}
	sess.Input(req.Query)
	s.send(s.frameResponse(req.ID, sess, start))
}

func (s *Server) handleKey(req Request, start time.Time) {
	sess, ok := s.lookup(req)
	if !ok {
		return
	}
	action, target, err := sess.Key(req.Key)
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	resp := s.frameResponse(req.ID, sess, start)
	resp.Action = action.String()
	resp.Target = target
	resp.Handled = action != session.ActionNone
	s.send(resp)
}

func (s *Server) handleClose(req Request) {
	if _, ok := s.lookup(req); !ok {
		return
	}
	delete(s.sessions, req.Session)
	s.log.Debugf("Closed session %s", req.Session)
	s.send(StatusResponse{ID: req.ID, Status: "closed"})
}

func (s *Server) handleLookup(req Request) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		s.sendError(req.ID, "Missing 'q' field", 400)
		return
	}
	if !s.validQuery(req) {
		return
	}

	global := s.scopes[""].corpus
	resp := LookupResponse{ID: req.ID, Query: q, Items: []ResultItem{}}
	path, isPackage := global.PackagePath(q)
	resp.Path = path
	for i, e := range global.Lookup(q) {
		resp.Items = append(resp.Items, ResultItem{
			Full:      e.Full,
			Label:     e.Full,
			Link:      e.Link,
			Kind:      e.Kind.String(),
			KindLabel: e.KindLabel(),
			Rank:      uint32(i + 1),
		})
	}
	if !isPackage && len(resp.Items) == 0 {
		s.sendError(req.ID, fmt.Sprintf("No entity or package named %s", q), 404)
		return
	}
	s.send(resp)
}

func (s *Server) handleInfo(req Request) {
	global := s.scopes[""]
	resp := InfoResponse{
		ID:       req.ID,
		Status:   "ok",
		Packages: len(global.corpus.Packages()),
		Entities: global.corpus.Len(),
		Sessions: len(s.sessions),
		Scopes:   len(s.scopes),
	}
	for _, sc := range s.scopes {
		stats := sc.ranker.Stats()
		resp.CacheHits += stats["cache_hits"]
		resp.CacheMisses += stats["cache_misses"]
	}
	s.send(resp)
}

// scope returns the shared corpus view for pkg, building it on first use
func (s *Server) scope(pkg string) (*scope, error) {
	if sc, ok := s.scopes[pkg]; ok {
		return sc, nil
	}
	c, err := corpus.Build(s.data, corpus.Options{Package: pkg})
	if err != nil {
		return nil, err
	}
	sc := &scope{corpus: c, ranker: suggest.NewRanker(c.Entities(), s.config.RankerOptions())}
	s.scopes[pkg] = sc
	return sc, nil
}

func (s *Server) lookup(req Request) (*session.Session, bool) {
	if req.Session == "" {
		s.sendError(req.ID, "Missing 's' field", 400)
		return nil, false
	}
	sess, ok := s.sessions[req.Session]
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("%v: %s", errUnknownSession, req.Session), 404)
		return nil, false
	}
	return sess, true
}

func (s *Server) validQuery(req Request) bool {
	if limit := s.config.Server.MaxQueryLength; len([]rune(req.Query)) > limit {
		s.sendError(req.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", limit), 400)
		s.log.Debug("Query is too long in request")
		return false
	}
	return true
}

func (s *Server) frameResponse(id string, sess *session.Session, start time.Time) FrameResponse {
	frame := sess.Frame()

	scores := make([]int, len(frame.Items))
	for i, it := range frame.Items {
		scores[i] = it.Score
	}
	ranks := utils.CreateRankList(scores)

	items := make([]ResultItem, len(frame.Items))
	for i, it := range frame.Items {
		items[i] = ResultItem{
			Full:      it.Full,
			Label:     it.Label,
			Link:      it.Link,
			Kind:      it.Kind,
			KindLabel: it.KindLabel,
			Rank:      ranks[i],
			Score:     it.Score,
		}
	}

	return FrameResponse{
		ID:        id,
		Session:   sess.ID,
		Query:     frame.Query,
		Items:     items,
		Cursor:    frame.Cursor,
		Found:     frame.Found,
		Shown:     frame.Shown,
		Total:     frame.Total,
		Order:     frame.Order,
		TimeTaken: time.Since(start).Microseconds(),
	}
}

// send encodes one response and flushes it
func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
