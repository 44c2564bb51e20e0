package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticHandler struct{}

func (staticHandler) Routes() []Route {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	return []Route{
		{Method: http.MethodGet, Path: "/a", Handler: ok},
		{Method: http.MethodPost, Path: "/a", Handler: ok},
		{Method: http.MethodGet, Path: "/b", Handler: ok},
	}
}

func TestBasicRouter(t *testing.T) {
	t.Run("Handle", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("get", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("expected 200 pong, got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(staticHandler{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/a", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
			t.Errorf("expected Allow 'GET, POST', got %q", allow)
		}
	})

	t.Run("HEAD Needs Registration", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(staticHandler{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/b", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for unregistered HEAD, got %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != "GET" {
			t.Errorf("expected Allow 'GET', got %q", allow)
		}
	})

	t.Run("Unknown Path", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(staticHandler{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("expected %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("expected %v, got %v", want, order)
				break
			}
		}
	})

	t.Run("Routes", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(staticHandler{})

		routes := router.Routes()
		if len(routes) != 3 {
			t.Fatalf("expected 3 routes, got %d", len(routes))
		}
		if routes[0].Path != "/a" || routes[0].Method != http.MethodGet || routes[1].Method != http.MethodPost || routes[2].Path != "/b" {
			t.Errorf("unexpected route order %+v", routes)
		}
	})
}
