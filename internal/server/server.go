package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/careercompass/career-compass/internal/analyze"
	"github.com/careercompass/career-compass/internal/chat"
	"github.com/careercompass/career-compass/internal/extract"
	"go.uber.org/zap"
)

const maxUploadBytes = 16 << 20

// Server exposes the analyzer, the chat session and the resume extractor over HTTP.
type Server struct {
	analyzer  *analyze.Analyzer
	session   *chat.Session
	extractor extract.Extractor
	logger    *zap.Logger
}

func New(analyzer *analyze.Analyzer, session *chat.Session, extractor extract.Extractor, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		analyzer:  analyzer,
		session:   session,
		extractor: extractor,
		logger:    log,
	}
}

type analyzeRequest struct {
	JobDescription string `json:"job_description"`
	ResumeText     string `json:"resume_text"`
}

type chatRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type parseResumeResponse struct {
	Text        string `json:"text"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP handler with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/parse-resume", s.handleParseResume)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"message": "Career Compass API",
		"endpoints": map[string]string{
			"analyze":      "/api/analyze",
			"chat":         "/api/chat",
			"parse_resume": "/api/parse-resume",
		},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := s.analyzer.Analyze(r.Context(), req.JobDescription, req.ResumeText)
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := s.session.Chat(r.Context(), req.Query, req.Context)
	s.respondJSON(w, http.StatusOK, chatResponse{Response: response})
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "reading upload failed")
		return
	}

	contentType := header.Header.Get("Content-Type")

	text, err := s.extractor.ExtractText(content, contentType)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			s.respondError(w, http.StatusBadRequest, "invalid file type, please upload a PDF, DOCX or TXT file")
			return
		}
		s.logger.Error("resume extraction failed",
			zap.String("filename", header.Filename),
			zap.String("content_type", contentType),
			zap.Error(err),
		)
		s.respondError(w, http.StatusInternalServerError, "error parsing file")
		return
	}

	s.respondJSON(w, http.StatusOK, parseResumeResponse{
		Text:        text,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        len(content),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
