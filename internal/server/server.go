// package server contains middleware & handlers for the OAuth proxy
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, CORS, panic recovery, request ids, etc.
type Middleware func(http.Handler) http.Handler

// Route binds a method and path to a handler.
type Route struct {
	Method  string
	Path    string
	Handler http.Handler
}

// Handler defines the interface for groups of HTTP endpoints.
// Implementations own their route definitions (login, callback, refresh).
type Handler interface {
	Routes() []Route // Routes returns the method/path pairs this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}
