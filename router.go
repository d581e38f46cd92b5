package viewkit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/requestid"
	"github.com/dmitrymomot/viewkit/views"
)

// RouterConfig configures Router.
type RouterConfig struct {
	// Views is the URL-mapping policy applied to every request.
	Views views.Config
	// Logger enables request logging when set.
	Logger *slog.Logger
	// Translator enables per-request language negotiation when set.
	Translator *i18n.Translator
}

// Router assembles a chi router with the standard middleware stack: request
// IDs first so every later log line can carry one, then language
// negotiation, request logging, and finally the views URL mapping. View
// handlers are mounted on the returned router.
func Router(cache *views.Cache, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	if cfg.Translator != nil {
		r.Use(cfg.Translator.Middleware)
	}
	if cfg.Logger != nil {
		r.Use(RequestLogger(cfg.Logger))
	}
	r.Use(views.Middleware(cache, cfg.Views))

	return r
}

// RequestLogger logs one line per request with method, path, status, and
// duration. The path logged is the one the client sent, before any view
// rewrite.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			log.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wrote {
		w.status = status
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}
