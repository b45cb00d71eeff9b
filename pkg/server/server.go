package server

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bizzyvinci/levserve/internal/utils"
	"github.com/bizzyvinci/levserve/pkg/config"
	"github.com/bizzyvinci/levserve/pkg/similarity"
)

// Server handles the IPC for similarity queries.
type Server struct {
	index *similarity.Index
	cfg   *config.Config
	dec   *msgpack.Decoder
	enc   *msgpack.Encoder
	out   *bufio.Writer
}

// NewServer creates a similarity server using stdin/stdout for IPC.
func NewServer(index *similarity.Index, cfg *config.Config) *Server {
	return NewServerWithIO(index, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over explicit streams; tests use
// in-memory pipes.
func NewServerWithIO(index *similarity.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	return &Server{
		index: index,
		cfg:   cfg,
		dec:   msgpack.NewDecoder(bufio.NewReader(r)),
		enc:   msgpack.NewEncoder(out),
		out:   out,
	}
}

// Start processes request frames until the input stream closes.
func (s *Server) Start() error {
	log.Debug("Starting similarity server")
	for {
		var req SimilarityRequest
		if err := s.dec.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleQuery(req)
	}
}

// handleQuery validates one request and sends exactly one frame back.
func (s *Server) handleQuery(req SimilarityRequest) {
	term := req.Term
	if term == "" {
		s.sendError(req.ID, "missing 'term' parameter", 400)
		return
	}
	if len(term) < s.cfg.Server.MinTerm {
		s.sendError(req.ID, "term too short", 400)
		return
	}
	if len(term) > s.cfg.Server.MaxTerm {
		s.sendError(req.ID, "term too long", 400)
		return
	}
	if s.cfg.Server.EnableFilter && !utils.IsValidInput(term) {
		// Filtered terms are a defined empty result, not an error.
		s.send(SimilarityResponse{ID: req.ID, Matches: []SimilarityMatch{}})
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	results, err := s.index.MostSimilar(term, limit)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("Query %q failed: %v", term, err)
		s.sendError(req.ID, err.Error(), 500)
		return
	}

	matches := make([]SimilarityMatch, len(results))
	for i, r := range results {
		matches[i] = SimilarityMatch{Term: r.Term, Score: r.Score}
	}
	s.send(SimilarityResponse{
		ID:        req.ID,
		Matches:   matches,
		Count:     len(matches),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.out.Flush(); err != nil {
		log.Errorf("Flushing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(RequestError{ID: id, Error: message, Code: code})
}
