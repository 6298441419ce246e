package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server handles incoming HTTP requests for interacting with the
// configured modem through its Gateway
type Server struct {
	Logger  *slog.Logger
	Gateway *Gateway
	router  chi.Router
}

// NewServer wires the routes. metrics may be nil.
func NewServer(logger *slog.Logger, gw *Gateway, metrics http.Handler) *Server {
	s := &Server{Logger: logger, Gateway: gw}

	r := chi.NewRouter()
	r.Post("/sms", s.handleSMS)
	r.Post("/at", s.handleAT)
	r.Get("/notifications", s.handleNotifications)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	s.sendJSON(w, ErrorResponse{Message: message}, statusCode)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}

// handleSMS processes incoming HTTP POST requests to send SMS messages
func (s *Server) handleSMS(w http.ResponseWriter, r *http.Request) {
	type SMSRequest struct {
		To      string `json:"to"`
		Message string `json:"message"`
	}
	type SMSResponse struct {
		Reference string `json:"reference"`
	}

	var req SMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.To == "" || req.Message == "" {
		s.sendError(w, "both 'to' and 'message' fields are required", http.StatusBadRequest)
		return
	}

	ref, err := s.Gateway.SendSMS(r.Context(), req.To, req.Message)
	if err != nil {
		s.Logger.Error("Failed to send SMS", "error", err, "to", req.To)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}

	s.Logger.Info("SMS sent successfully", "to", req.To, "message_length", len(req.Message), "reference", ref)
	s.sendJSON(w, SMSResponse{Reference: ref}, http.StatusOK)
}

// handleAT passes a raw AT command through to the modem
func (s *Server) handleAT(w http.ResponseWriter, r *http.Request) {
	type ATRequest struct {
		Command   string `json:"command"`
		TimeoutMS int    `json:"timeout_ms"`
	}
	type ATResponse struct {
		Result string   `json:"result"`
		Lines  []string `json:"lines"`
	}

	var req ATRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	timeout := time.Duration(req.TimeoutMS) * time.Millisecond
	res, lines, err := s.Gateway.Command(r.Context(), req.Command, timeout)
	if err != nil {
		s.Logger.Error("AT command failed", "error", err, "command", req.Command)
		s.sendError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	s.sendJSON(w, ATResponse{Result: res.String(), Lines: lines}, http.StatusOK)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, s.Gateway.Notifications(), http.StatusOK)
}
