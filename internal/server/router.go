package server

import (
	"net/http"
	"sort"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for routing.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	routes      map[string]map[string]http.Handler
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
		routes:      map[string]map[string]http.Handler{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
//
// Middleware must be added before routes are registered.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a [Handler] for the specified HTTP method and path.
//
// Several methods may share a path. Requests with an unregistered method get 405 with an Allow header.
// HEAD is not implied by GET and must be registered explicitly.
// Middleware wraps the method check so it also sees rejected requests (CORS preflight, logging).
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	method = strings.ToUpper(method)

	methods, ok := r.routes[path]
	if !ok {
		methods = map[string]http.Handler{}
		r.routes[path] = methods

		dispatch := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			h, ok := methods[strings.ToUpper(req.Method)]
			if !ok {
				w.Header().Set("Allow", strings.Join(sortedMethods(methods), ", "))
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			h.ServeHTTP(w, req)
		})

		r.mux.Handle(path, r.Apply(dispatch))
	}

	methods[method] = handler
}

// Handler registers a custom Handler implementation.
//
// All routes returned by [Handler.Routes] are registered with this router.
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}

// Routes lists the registered routes sorted by path, then method.
func (r *BasicRouter) Routes() []Route {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var out []Route
	for _, p := range paths {
		for _, m := range sortedMethods(r.routes[p]) {
			out = append(out, Route{Method: m, Path: p, Handler: r.routes[p][m]})
		}
	}
	return out
}

func sortedMethods(methods map[string]http.Handler) []string {
	out := make([]string, 0, len(methods))
	for m := range methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
