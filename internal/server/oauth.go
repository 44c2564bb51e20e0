package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotauth/internal/services"
	"github.com/desertthunder/spotauth/internal/shared"
)

// StateCookieName is the cookie holding the CSRF state between /login and /callback.
const StateCookieName = "spotify_auth_state"

// Error codes placed in the redirect fragment or JSON error body.
const (
	ErrorStateMismatch  = "state_mismatch"
	ErrorInvalidToken   = "invalid_token"
	ErrorInvalidRequest = "invalid_request"
)

// OAuthHandler serves the login, callback and refresh endpoints of the authorization code flow.
// Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	oauth    services.OAuthService
	prefix   string
	appURL   string
	logger   *log.Logger
	newState func() (string, error)
}

// OAuthHandlerOpts configures an [OAuthHandler].
type OAuthHandlerOpts struct {
	Service services.OAuthService
	Prefix  string // mount point, e.g. "/api/spotify"
	AppURL  string // client application root receiving the fragment, defaults to "/"
	Logger  *log.Logger
}

// NewOAuthHandler creates a handler for the given provider.
func NewOAuthHandler(opts OAuthHandlerOpts) *OAuthHandler {
	if opts.AppURL == "" {
		opts.AppURL = "/"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &OAuthHandler{
		oauth:    opts.Service,
		prefix:   strings.TrimSuffix(opts.Prefix, "/"),
		appURL:   opts.AppURL,
		logger:   opts.Logger,
		newState: shared.GenerateState,
	}
}

// Routes returns the HTTP routes this handler serves.
//
// Refresh is also mounted at /refresh_token for clients that call it on the app root.
func (h *OAuthHandler) Routes() []Route {
	routes := []Route{
		{Method: http.MethodGet, Path: h.prefix + "/login", Handler: http.HandlerFunc(h.Login)},
		{Method: http.MethodGet, Path: h.prefix + "/callback", Handler: http.HandlerFunc(h.Callback)},
		{Method: http.MethodGet, Path: h.prefix + "/refresh_token", Handler: http.HandlerFunc(h.Refresh)},
	}
	if h.prefix != "" {
		routes = append(routes, Route{Method: http.MethodGet, Path: "/refresh_token", Handler: http.HandlerFunc(h.Refresh)})
	}
	return routes
}

// Login stores a fresh state token in a cookie and redirects to the provider's authorize URL.
func (h *OAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := h.newState()
	if err != nil {
		h.logger.Error("failed to generate state", "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, "Failed to start authorization", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	redirect(w, h.oauth.AuthURL(state))
}

// Callback validates the state against the cookie, exchanges the code, and redirects to the app
// with the tokens or an error code in the fragment.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := q.Get("state")
	code := q.Get("code")
	logger := h.logger.With("request_id", RequestID(r.Context()))

	var stored string
	if c, err := r.Cookie(StateCookieName); err == nil {
		stored = c.Value
	}

	// single use regardless of outcome
	clearStateCookie(w)

	if state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(stored)) != 1 {
		logger.Warn("rejecting callback", "error", shared.ErrStateMismatch, "has_state", state != "", "has_cookie", stored != "")
		h.redirectFragment(w, url.Values{"error": {ErrorStateMismatch}})
		return
	}

	// denied consent still goes through the exchange and ends as invalid_token
	if providerErr := q.Get("error"); providerErr != "" {
		logger.Warn("provider returned an error", "error", fmt.Errorf("%w: %s", shared.ErrAccessDenied, providerErr))
	}

	token, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		status, errCode := services.ProviderStatus(err)
		logger.Error("token exchange failed", "provider", h.oauth.Name(), "status", status, "code", errCode, "error", err)
		h.redirectFragment(w, url.Values{"error": {ErrorInvalidToken}})
		return
	}

	h.redirectFragment(w, url.Values{
		"access_token":  {token.AccessToken},
		"refresh_token": {token.RefreshToken},
	})
}

// Refresh trades the refresh_token query parameter for a new access token, returned as JSON.
func (h *OAuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", RequestID(r.Context()))
	refreshToken := r.URL.Query().Get("refresh_token")

	if refreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ErrorInvalidRequest})
		return
	}

	token, err := h.oauth.Refresh(r.Context(), refreshToken)
	if err != nil {
		status, errCode := services.ProviderStatus(err)
		logger.Error("token refresh failed", "provider", h.oauth.Name(), "status", status, "code", errCode, "error", err)

		if errors.Is(err, shared.ErrNoRefreshToken) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: ErrorInvalidRequest})
			return
		}
		writeJSON(w, http.StatusBadGateway, errorBody{Error: ErrorInvalidToken})
		return
	}

	writeJSON(w, http.StatusOK, refreshBody{AccessToken: token.AccessToken})
}

type refreshBody struct {
	AccessToken string `json:"access_token"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *OAuthHandler) redirectFragment(w http.ResponseWriter, v url.Values) {
	redirect(w, h.appURL+"#"+v.Encode())
}

// redirect writes a 302 with target as-is; [http.Redirect] would clean the path and mangle fragments.
func redirect(w http.ResponseWriter, target string) {
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
