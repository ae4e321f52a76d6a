package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordassist/internal/logger"
	"github.com/bastiangx/wordassist/internal/utils"
	"github.com/bastiangx/wordassist/pkg/config"
	"github.com/bastiangx/wordassist/pkg/dictionary"
	"github.com/bastiangx/wordassist/pkg/suggest"
	"github.com/bastiangx/wordassist/pkg/surface"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for content assist proposals
type Server struct {
	processor    *suggest.WordProcessor
	config       *config.Config
	configPath   string
	requestCount int

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a server on stdin/stdout.
func NewServer(processor *suggest.WordProcessor, cfg *config.Config, configPath string) *Server {
	return NewServerWithIO(processor, cfg, configPath, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from in and writing
// responses to out. A nil config selects the defaults.
func NewServerWithIO(processor *suggest.WordProcessor, cfg *config.Config, configPath string, in io.Reader, out io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	w := bufio.NewWriter(out)
	return &Server{
		processor:  processor,
		config:     cfg,
		configPath: configPath,
		decoder:    msgpack.NewDecoder(bufio.NewReader(in)),
		writer:     w,
		encoder:    msgpack.NewEncoder(w),
		log:        logger.New("server"),
	}
}

// Start serves requests until the input ends. A value that is not valid
// msgpack ends the stream, since the next value cannot be located.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")
	for {
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			s.sendError("", "invalid msgpack stream", 400)
			return fmt.Errorf("decode request: %w", err)
		}
		s.handleMessage(raw)
	}
}

func (s *Server) handleMessage(raw msgpack.RawMessage) {
	s.requestCount++
	if every := s.config.Server.ReloadEvery; every > 0 && s.requestCount%every == 0 {
		s.reloadConfig()
	}

	var p probe
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		s.log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "request must be a map", 400)
		return
	}

	if p.Action == "set_limits" {
		var req ConfigRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.sendError(p.ID, fmt.Sprintf("invalid config request: %v", err), 400)
			return
		}
		s.handleConfig(req)
		return
	}

	if p.Action != "" {
		var req DictionaryRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.sendError(p.ID, fmt.Sprintf("invalid dictionary request: %v", err), 400)
			return
		}
		s.handleDictionary(req)
		return
	}

	var req ProposalRequest
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.sendError(p.ID, fmt.Sprintf("invalid proposal request: %v", err), 400)
		return
	}
	s.handleProposals(req)
}

func (s *Server) handleProposals(req ProposalRequest) {
	if maxBuf := s.config.Server.MaxBuffer; maxBuf > 0 && len(req.Buffer) > maxBuf {
		s.log.Debugf("Buffer of %d bytes exceeds %d", len(req.Buffer), maxBuf)
		s.sendError(req.ID, fmt.Sprintf("buffer exceeds maximum size of %d bytes", maxBuf), 413)
		return
	}
	if !utf8.ValidString(req.Buffer) {
		s.sendError(req.ID, "buffer is not valid UTF-8", 400)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.config.CLI.DefaultLimit
	}
	if maxLimit := s.config.Server.MaxLimit; maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	// ranks are uint16 on the wire
	if limit <= 0 || limit > math.MaxUint16 {
		limit = math.MaxUint16
	}

	buf := surface.NewBuffer(req.Buffer)
	caret := buf.Len()
	if req.Caret != nil && *req.Caret >= 0 && *req.Caret < caret {
		caret = *req.Caret
	}

	start := time.Now()
	proposals := s.processor.ComputeProposals(buf, caret)
	if len(proposals) > limit {
		proposals = proposals[:limit]
	}
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(proposals))
	suggestions := make([]ProposalSuggestion, len(proposals))
	for i, p := range proposals {
		suggestions[i] = ProposalSuggestion{
			Word:       p.Text(),
			Offset:     p.Offset(),
			Length:     p.Length(),
			CaretAfter: p.CaretAfter(),
			Detail:     p.DetailText(),
			Rank:       ranks[i],
		}
	}

	s.sendResponse(ProposalResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleDictionary(req DictionaryRequest) {
	resp := DictionaryResponse{ID: req.ID, Status: "ok"}

	switch req.Action {
	case "get_info":
	case "set_words":
		if len(req.Entries) > 0 {
			s.processor.SetEntries(dictionary.Truncate(req.Entries, s.config.Dict.MaxWords))
		} else {
			words := req.Words
			if maxWords := s.config.Dict.MaxWords; maxWords > 0 && len(words) > maxWords {
				words = words[:maxWords]
			}
			s.processor.SetWords(words)
		}
		s.log.Debugf("Dictionary replaced over IPC")
	case "load_file":
		entries, err := dictionary.LoadFile(req.Path)
		if err != nil {
			resp.Status = "error"
			resp.Error = err.Error()
			break
		}
		s.processor.SetEntries(dictionary.Truncate(entries, s.config.Dict.MaxWords))
		s.log.Debugf("Dictionary loaded from %s", req.Path)
	default:
		resp.Status = "error"
		resp.Error = fmt.Sprintf("unknown action: %s", req.Action)
	}

	d := s.processor.Dictionary()
	resp.WordCount = d.Len()
	resp.BucketCount = d.BucketCount()
	s.sendResponse(resp)
}

// handleConfig applies new limits in memory and saves them when a config file
// is active. A failed save still leaves the new limits in effect.
func (s *Server) handleConfig(req ConfigRequest) {
	resp := ConfigResponse{ID: req.ID, Status: "ok"}
	for _, v := range []*int{req.MaxLimit, req.MaxBuffer, req.ReloadEvery} {
		if v != nil && *v < 0 {
			s.sendError(req.ID, "limits must not be negative", 400)
			return
		}
	}

	if s.configPath == "" {
		cfg := *s.config
		s.config = &cfg
		if req.MaxLimit != nil {
			cfg.Server.MaxLimit = *req.MaxLimit
		}
		if req.MaxBuffer != nil {
			cfg.Server.MaxBuffer = *req.MaxBuffer
		}
		if req.ReloadEvery != nil {
			cfg.Server.ReloadEvery = *req.ReloadEvery
		}
	} else if err := s.config.Update(s.configPath, req.MaxLimit, req.MaxBuffer, req.ReloadEvery); err != nil {
		s.log.Errorf("Saving config: %v", err)
		resp.Status = "error"
		resp.Error = err.Error()
	}

	resp.MaxLimit = s.config.Server.MaxLimit
	resp.MaxBuffer = s.config.Server.MaxBuffer
	resp.ReloadEvery = s.config.Server.ReloadEvery
	s.sendResponse(resp)
}

func (s *Server) reloadConfig() {
	if s.configPath == "" {
		return
	}
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.log.Warnf("Config reload failed: %v", err)
		return
	}
	s.config = cfg
	s.log.Debugf("Reloaded config after %d requests", s.requestCount)
}

// sendResponse encodes response and flushes it to the client.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}
