package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotauth/internal/services"
	"github.com/desertthunder/spotauth/internal/shared"
)

const shutdownTimeout = 5 * time.Second

// NewProxy builds the router serving the OAuth endpoints under config.Server.Prefix plus /healthz.
// Only /healthz answers HEAD; the OAuth endpoints have side effects.
func NewProxy(config *shared.Config, svc services.OAuthService, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(WithRecover(logger), WithRequestID(), WithLogging(logger), WithCORS(config.Server.AllowedOrigin))

	router.Handler(NewOAuthHandler(OAuthHandlerOpts{
		Service: svc,
		Prefix:  config.Server.Prefix,
		AppURL:  config.Server.AppURL,
		Logger:  logger,
	}))
	health := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle(http.MethodGet, "/healthz", health)
	router.Handle(http.MethodHead, "/healthz", health)

	return router
}

// NewHTTPServer wraps handler in an [http.Server] with header and idle timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the server down gracefully.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *log.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("listening on %v", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
