package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// RouterOptions holds everything the HTTP router needs.
type RouterOptions struct {
	Accounts AccountService
	// Static is the single-page app bundle; nil disables static serving.
	Static fs.FS
	CORS   CORSOptions
	// ExposeErrors includes panic details in 500 responses (dev mode).
	ExposeErrors bool
	Logger       *slog.Logger
}

// NewRouter creates the API + SPA handler with CORS, logging and recovery middleware.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerAuthRoutes(mux, &AuthHandlers{Svc: opts.Accounts, Logger: logger})
	mux.Handle("GET /api/health", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /api/health", http.HandlerFunc(healthHandler))
	mux.Handle("/api/", http.HandlerFunc(apiNotFound))
	mux.Handle("/", NewSPAHandler(opts.Static))

	return Chain(mux,
		CORS(opts.CORS),
		Logging(logger),
		Recover(logger, opts.ExposeErrors),
	)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	if h == nil || h.Svc == nil {
		return
	}
	mux.HandleFunc("POST /api/auth/signup", h.Signup)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/verify", h.Verify)
}
