package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ledgerpipe/bankfeed/pkg/config"
	"github.com/ledgerpipe/bankfeed/pkg/models"
	"github.com/ledgerpipe/bankfeed/pkg/parser"
)

// Server exposes the normalization engine over HTTP. One endpoint per report
// family, each accepting a multipart upload under the "file" field.
type Server struct {
	config *config.Config
	logger *log.Logger
	router *mux.Router
	parser *parser.Parser
}

func New(cfg *config.Config, logger *log.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		router: mux.NewRouter(),
		parser: parser.New(logger),
	}
	s.routes()
	return s
}

// Start blocks serving HTTP on the configured address.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.config.ListenAddr)
	return http.ListenAndServe(s.config.ListenAddr, s.router)
}

// Handler returns the route tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api/process").Subrouter()
	api.HandleFunc("/citi-monthly", s.withLogging(s.handleCitiMonthly)).Methods(http.MethodPost)
	api.HandleFunc("/citi-daily-balance", s.withLogging(s.handleCitiDailyBalance)).Methods(http.MethodPost)
	api.HandleFunc("/hsbc-monthly", s.withLogging(s.handleHSBCMonthly)).Methods(http.MethodPost)
	api.HandleFunc("/broker-statement", s.withLogging(s.handleBrokerStatement)).Methods(http.MethodPost)

	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
}

// processResponse is the envelope every processing endpoint returns. Status
// is "success", "warning" (parse completed with zero qualifying records) or
// "error".
type processResponse struct {
	Status    string              `json:"status"`
	Message   string              `json:"message"`
	Data      any                 `json:"data,omitempty"`
	Count     int                 `json:"count"`
	Skipped   []models.SkipReason `json:"skipped,omitempty"`
	ErrorCode string              `json:"error_code,omitempty"`
}

func (s *Server) handleCitiMonthly(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		result, err := s.parser.ParseCitiMonthlyXLS(data)
		respondResult(s, w, result, err, "monthly statement")
		return
	}
	result, err := s.parser.ParseCitiMonthlyCSV(data)
	respondResult(s, w, result, err, "monthly statement")
}

func (s *Server) handleCitiDailyBalance(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	result, err := s.parser.ParseCitiDailyBalance(data)
	respondResult(s, w, result, err, "daily balance")
}

func (s *Server) handleHSBCMonthly(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	result, err := s.parser.ParseHSBCMonthlyCSV(data)
	respondResult(s, w, result, err, "monthly transaction")
}

func (s *Server) handleBrokerStatement(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	result, err := s.parser.ParseBrokerStatementXLSX(data)
	respondResult(s, w, result, err, "security transfer")
}

// respondResult maps the parse outcome onto the response envelope: document
// errors become error statuses, an empty result is a warning, anything else
// is a success carrying the records.
func respondResult[T any](s *Server, w http.ResponseWriter, result *models.Result[T], err error, noun string) {
	switch {
	case errors.Is(err, parser.ErrMissingMarker):
		_ = s.writeJSON(w, http.StatusUnprocessableEntity, processResponse{
			Status:    "error",
			Message:   err.Error(),
			ErrorCode: "INVALID_FILE_FORMAT",
		})
	case err != nil:
		_ = s.writeJSON(w, http.StatusBadRequest, processResponse{
			Status:    "error",
			Message:   err.Error(),
			ErrorCode: "PROCESSING_ERROR",
		})
	case result.Empty():
		_ = s.writeJSON(w, http.StatusOK, processResponse{
			Status:  "warning",
			Message: "processing completed but no qualifying records were found",
			Skipped: result.Skipped,
		})
	default:
		_ = s.writeJSON(w, http.StatusOK, processResponse{
			Status:  "success",
			Message: fmt.Sprintf("processed %d %s records", len(result.Records), noun),
			Data:    result.Records,
			Count:   len(result.Records),
			Skipped: result.Skipped,
		})
	}
}

// readUpload pulls the uploaded file out of the multipart form. On failure it
// writes the error response itself and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file upload required", err)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read file", err)
		return nil, "", false
	}
	return data, header.Filename, true
}

// --- helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, err error) {
	s.logger.Warn("request error", "status", status, "msg", message, "err", err)
	_ = s.writeJSON(w, status, processResponse{
		Status:    "error",
		Message:   message,
		ErrorCode: http.StatusText(status),
	})
}

// withLogging tags each request with an id, logs start/end and recovers
// panics into a 500 response.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		s.logger.Debug("http request", "id", requestID, "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "id", requestID, "panic", rec, "path", r.URL.Path)
				s.respondError(w, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
