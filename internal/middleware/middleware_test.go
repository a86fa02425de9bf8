package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"restopos-api/internal/models"
	repoMocks "restopos-api/internal/repositories/mocks"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{"frappe style", "token abc:def", "", "abc:def"},
		{"bearer", "Bearer xyz", "", "xyz"},
		{"raw header", "  raw  ", "", "raw"},
		{"query param", "", "?token=q1", "q1"},
		{"header wins", "Bearer h", "?token=q", "h"},
		{"none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := ExtractToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetToken(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/pos/shift"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireUser(t *testing.T) {
	cashier := &models.User{Name: "cashier@example.com", Enabled: true}

	users := &repoMocks.MockUsers{}
	users.On("GetUserByToken", mock.Anything, "good").Return(cashier, nil)
	users.On("GetUserByToken", mock.Anything, "stale").Return(nil, nil)
	users.On("GetUserByToken", mock.Anything, "boom").Return(nil, errors.New("db down"))

	var seen *models.User
	h := RequestID(ExtractToken(RequireUser(users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))))

	tests := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"valid", "good", http.StatusNoContent, ""},
		{"missing", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", "stale", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"lookup error", "boom", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			if tt.token != "" {
				req.Header.Set("Authorization", "token "+tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code == "" {
				assert.Equal(t, cashier, seen)
				return
			}
			assert.Nil(t, seen)

			var body struct {
				RequestID string `json:"request_id"`
				Error     struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "req-1", body.RequestID)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, got, 36)
	assert.Equal(t, got, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "from-client")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "from-client", got)
	assert.Equal(t, "from-client", rec.Header().Get(RequestIDHeader))

	assert.Empty(t, GetRequestID(context.Background()))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(zap.New(core)))
	r.Get("/tables/{table}/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/tables/{table}/kot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	req := httptest.NewRequest(http.MethodGet, "/tables/T1/orders", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/tables/T1/kot", nil))

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-42", first["request_id"])
	assert.Equal(t, "/tables/T1/orders", first["path"])
	assert.Equal(t, "/tables/{table}/orders", first["route"])
	assert.Equal(t, int64(200), first["status"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(409), entries[1].ContextMap()["status"])
}

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(pm.Handler)
	r.Get("/tables/{table}/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {})

	for _, table := range []string{"T1", "T2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tables/"+table+"/orders", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "/tables/{table}/orders", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pm.requestCount.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(pm.requestCount))

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
