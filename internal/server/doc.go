// Package server provides HTTP routing, middleware, and the OAuth proxy handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with per-path method dispatch.
// Unregistered methods get 405 after middleware ran, so CORS preflight and request logging see them.
//
// # OAuth Proxy Handlers
//
// [OAuthHandler] implements the three endpoints of the authorization code flow:
//
//	GET {prefix}/login         → 302 to the provider authorize URL, sets the state cookie
//	GET {prefix}/callback      → 302 to the app root with tokens or an error in the fragment
//	GET {prefix}/refresh_token → 200 {"access_token": ...}, 400/502 {"error": ...}
//
// The state cookie ([StateCookieName]) is cleared on every callback, matching or not.
// A mismatch redirects with error=state_mismatch and never reaches the provider.
// Upstream failures redirect with error=invalid_token (callback) or answer 502 (refresh).
//
// Nothing is stored server side: the state lives in the client cookie and tokens are handed
// straight back to the caller.
//
// # Lifecycle
//
// [NewProxy] assembles the router with recovery, request id, logging and CORS middleware.
// [Serve] runs an [http.Server] until its context is cancelled and then shuts down gracefully.
package server
