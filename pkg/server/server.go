package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/shuangpin/internal/utils"
	"github.com/bastiangx/shuangpin/pkg/dictionary"
	"github.com/bastiangx/shuangpin/pkg/helpcode"
	"github.com/bastiangx/shuangpin/pkg/session"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for one input session
type Server struct {
	dict    *dictionary.Dictionary
	session *session.Session
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	out     *bufio.Writer
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(dict *dictionary.Dictionary, sess *session.Session, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		dict:    dict,
		session: sess,
		dec:     msgpack.NewDecoder(bufio.NewReader(r)),
		enc:     msgpack.NewEncoder(out),
		out:     out,
	}
}

// Start serves requests until the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	s.sendResponse(ActionResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	log.Debugf("Request %s: %s", request.ID, request.Action)

	switch request.Action {
	case "key":
		s.session.Type(utils.NormalizeKeys(request.Keys))
		s.sendState(request)
	case "state":
		s.sendState(request)
	case "select":
		s.handleSelect(request)
	case "create":
		s.handleMutation(request, s.dict.CreateWord)
	case "delete":
		s.handleMutation(request, s.dict.DeleteWord)
	case "reset":
		s.session.Reset()
		s.sendResponse(ActionResponse{ID: request.ID, Status: "ok"})
	case "health":
		s.sendResponse(ActionResponse{ID: request.ID, Status: "ok", Stats: s.dict.Stats()})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), 400)
	}
}

// sendState renders the session's composition.
func (s *Server) sendState(request Request) {
	start := time.Now()
	items := s.session.Candidates()
	if request.Limit > 0 && len(items) > request.Limit {
		items = items[:request.Limit]
	}

	sch := s.dict.Scheme()
	candidates := make([]Candidate, len(items))
	for i, it := range items {
		candidates[i] = Candidate{
			Word: it.Word,
			Hint: helpcode.Annotate(sch, it.Word),
			Rank: uint16(i + 1),
		}
	}

	s.sendResponse(StateResponse{
		ID:           request.ID,
		Sequence:     s.session.PinyinSequence(),
		Segmentation: s.session.SegmentationWithCase(),
		HelpCodes:    s.session.HelpCodes(),
		HelpMode:     s.session.InHelpMode(),
		State:        s.session.State().String(),
		Candidates:   candidates,
		Count:        len(candidates),
		TimeTaken:    time.Since(start).Microseconds(),
	})
}

// handleSelect commits the i-th candidate: its weight is bumped and the session resets.
func (s *Server) handleSelect(request Request) {
	items := s.session.Candidates()
	if request.Index < 0 || request.Index >= len(items) {
		s.sendError(request.ID, fmt.Sprintf("Candidate index %d out of range", request.Index), 400)
		return
	}
	chosen := items[request.Index]
	// the key is the pinyin the candidate matched, which differs from the typed letters for
	// abbreviated input
	if err := s.dict.UpdateWeight(chosen.Key, chosen.Word); err != nil {
		// predicted phrases and letter-table picks are not stored; committing them still succeeds
		log.Debugf("Not promoting %s: %v", chosen.Word, err)
	}
	s.session.Reset()
	s.sendResponse(ActionResponse{ID: request.ID, Status: "ok", Word: chosen.Word})
}

func (s *Server) handleMutation(request Request, apply func(pinyin, word string) error) {
	if request.Pinyin == "" || request.Word == "" {
		s.sendError(request.ID, "Missing 'p' or 'w' parameter", 400)
		return
	}
	if err := apply(request.Pinyin, request.Word); err != nil {
		code := 500
		switch {
		case errors.Is(err, dictionary.ErrInvalidWord):
			code = 400
		case errors.Is(err, dictionary.ErrNotFound):
			code = 404
		}
		s.sendError(request.ID, err.Error(), code)
		return
	}
	s.sendResponse(ActionResponse{ID: request.ID, Status: "ok", Word: request.Word})
}

// sendResponse encodes one msgpack value and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(RequestError{ID: id, Error: message, Code: code})
}
