package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	foodcart "github.com/target/foodcart"
	"github.com/target/foodcart/config"
	httpx "github.com/target/foodcart/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Accounts httpx.AccountService
	Logger   *slog.Logger
}

// StaticFS picks the single-page app bundle: HTTP_STATIC_DIR when set,
// the embedded web/dist otherwise.
//
//nolint:ireturn // fs.FS is the point.
func StaticFS(cfg config.HTTPConfig) (fs.FS, error) {
	if cfg.StaticDir != "" {
		info, err := os.Stat(cfg.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %q is not a directory", cfg.StaticDir)
		}
		return os.DirFS(cfg.StaticDir), nil
	}
	sub, err := fs.Sub(foodcart.WebFS, "web/dist")
	if err != nil {
		return nil, fmt.Errorf("embedded web bundle: %w", err)
	}
	return sub, nil
}

// NewHTTPServer builds the server without starting it.
func NewHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	static, err := StaticFS(appCfg.HTTP)
	if err != nil {
		logger.Warn("static bundle unavailable; serving API only", "error", err)
	}

	handler := httpx.NewRouter(httpx.RouterOptions{
		Accounts: cfg.Accounts,
		Static:   static,
		CORS: httpx.CORSOptions{
			AllowedOrigin: appCfg.HTTP.CORSAllowedOrigin,
			MaxAgeSeconds: appCfg.HTTP.CORSMaxAgeSeconds,
		},
		ExposeErrors: appCfg.IsDev,
		Logger:       logger,
	})

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":5000"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

// ServeHTTP runs server on ln until ctx is canceled, then shuts it down gracefully.
func ServeHTTP(ctx context.Context, server *http.Server, ln net.Listener, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting HTTP server", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownWaitTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
