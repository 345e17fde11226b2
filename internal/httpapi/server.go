// Package httpapi exposes the interview engine over HTTP. The surface is
// deliberately small: one endpoint to start an interview, one to submit an
// answer, plus health and metrics probes.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/skillgate/interviewd/internal/interview"
	"github.com/skillgate/interviewd/internal/metrics"
)

// Server routes HTTP requests to the engine.
type Server struct {
	engine  *interview.Engine
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New builds a Server. Logger may be nil.
func New(engine *interview.Engine, log *zap.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{engine: engine, log: log, metrics: m}
}

// Handler returns the route table as a standard http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/interview/start", s.handleStart)
	mux.HandleFunc("POST /v1/interview/submit", s.handleSubmit)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/metrics", s.handleMetrics)
	return mux
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req interview.StartRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, interview.NewValidationError("body", err.Error()))
		return
	}

	resp, err := s.engine.Start(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req interview.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, interview.NewValidationError("body", err.Error()))
		return
	}

	resp, err := s.engine.Submit(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		s.writeJSON(w, http.StatusOK, map[string]string{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *interview.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error()})
	case errors.Is(err, interview.ErrSessionNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}
