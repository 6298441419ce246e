package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		replies    []string
		urc        string
		wantStatus int
		wantBody   string
		wantSent   string
	}{
		{
			name:       "send SMS",
			method:     http.MethodPost,
			path:       "/sms",
			body:       `{"to":"+301234","message":"hello"}`,
			replies:    []string{"> ", "+CMGS: 5\r\nOK\r\n"},
			wantStatus: http.StatusOK,
			wantBody:   `{"reference":"5"}`,
			wantSent:   "AT+CMGS=\"+301234\"\rhello\x1a",
		},
		{
			name:       "send SMS without recipient",
			method:     http.MethodPost,
			path:       "/sms",
			body:       `{"message":"hello"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"both 'to' and 'message' fields are required"}`,
		},
		{
			name:       "send SMS rejected",
			method:     http.MethodPost,
			path:       "/sms",
			body:       `{"to":"+301234","message":"hello"}`,
			replies:    []string{"ERROR\r\n"},
			wantStatus: http.StatusBadGateway,
			wantSent:   "AT+CMGS=\"+301234\"\r",
		},
		{
			name:       "malformed JSON",
			method:     http.MethodPost,
			path:       "/at",
			body:       `{"command":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "raw command",
			method:     http.MethodPost,
			path:       "/at",
			body:       `{"command":"+CSQ","timeout_ms":500}`,
			replies:    []string{"+CSQ: 20,0\r\nOK\r\n"},
			wantStatus: http.StatusOK,
			wantBody:   `{"result":"success","lines":["+CSQ: 20,0"]}`,
			wantSent:   "AT+CSQ\r",
		},
		{
			name:       "raw command without answer",
			method:     http.MethodPost,
			path:       "/at",
			body:       `{"command":"+CSQ","timeout_ms":50}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"result":"timeout","lines":[]}`,
			wantSent:   "AT+CSQ\r",
		},
		{
			name:       "notification is not part of the reply",
			method:     http.MethodPost,
			path:       "/at",
			body:       `{}`,
			replies:    []string{"RING\r\nOK\r\n"},
			wantStatus: http.StatusOK,
			wantBody:   `{"result":"success","lines":[]}`,
			wantSent:   "AT\r",
		},
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, tr := newTestGateway(t, GatewayOptions{})
			tr.Reply(tt.replies...)
			srv := NewServer(logger, gw, nil)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			assert.Equal(t, tt.wantSent, tr.Written())
		})
	}
}

func TestServerNotifications(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw, tr := newTestGateway(t, GatewayOptions{})
	srv := NewServer(logger, gw, nil)

	tr.SendData("+CMT: \"+301234\",,\"26/10/16,10:00:00+12\"\r\n")
	require.NoError(t, gw.idle(t.Context(), 10*time.Millisecond))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "+CMT:", got[0].Prefix)
	assert.Equal(t, "+CMT: \"+301234\",,\"26/10/16,10:00:00+12\"", got[0].Line)
}
