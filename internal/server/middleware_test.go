package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spotauth/internal/shared"
)

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("WithRequestID", func(t *testing.T) {
		t.Run("Generates ID", func(t *testing.T) {
			var seen string
			h := WithRequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestID(r.Context())
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if seen == "" {
				t.Fatal("expected request id in context")
			}
			if rec.Header().Get(RequestIDHeader) != seen {
				t.Errorf("expected response header %q, got %q", seen, rec.Header().Get(RequestIDHeader))
			}
		})

		t.Run("Keeps Incoming ID", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "abc-123")

			rec := httptest.NewRecorder()
			WithRequestID()(ok).ServeHTTP(rec, req)

			if rec.Header().Get(RequestIDHeader) != "abc-123" {
				t.Errorf("expected abc-123, got %q", rec.Header().Get(RequestIDHeader))
			}
		})
	})

	t.Run("WithLogging", func(t *testing.T) {
		var buf bytes.Buffer
		h := WithLogging(shared.NewLogger(&buf))(ok)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/spotify/refresh_token?refresh_token=secret", nil))

		out := buf.String()
		if !strings.Contains(out, "status=204") || !strings.Contains(out, "path=/api/spotify/refresh_token") {
			t.Errorf("unexpected log line %q", out)
		}
		if strings.Contains(out, "secret") {
			t.Error("query string must not be logged")
		}
	})

	t.Run("WithCORS", func(t *testing.T) {
		t.Run("Simple Request", func(t *testing.T) {
			rec := httptest.NewRecorder()
			WithCORS("")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
				t.Errorf("expected wildcard origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
			}
			if rec.Code != http.StatusNoContent {
				t.Errorf("expected handler to run, got %d", rec.Code)
			}
		})

		t.Run("Preflight", func(t *testing.T) {
			called := false
			h := WithCORS("https://app.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

			req := httptest.NewRequest(http.MethodOptions, "/api/spotify/refresh_token", nil)
			req.Header.Set("Access-Control-Request-Method", "GET")
			req.Header.Set("Access-Control-Request-Headers", "Authorization")

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if called {
				t.Error("preflight must not reach the handler")
			}
			if rec.Code != http.StatusNoContent {
				t.Errorf("expected 204, got %d", rec.Code)
			}
			if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example.com" {
				t.Errorf("unexpected origin %q", rec.Header().Get("Access-Control-Allow-Origin"))
			}
			if rec.Header().Get("Access-Control-Allow-Headers") != "Authorization" {
				t.Errorf("unexpected allow headers %q", rec.Header().Get("Access-Control-Allow-Headers"))
			}
		})
	})

	t.Run("WithRecover", func(t *testing.T) {
		var buf bytes.Buffer
		h := WithRecover(shared.NewLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(buf.String(), "boom") {
			t.Errorf("expected panic to be logged, got %q", buf.String())
		}
	})
}
