package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sagarc03/softserve"
)

type Resolver interface {
	Resolve(ctx context.Context, requestPath string) (softserve.Outcome, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	CORS CORSConfig
}

// Handler serves files from a Resolver over HTTP.
type Handler struct {
	config   HandlerConfig
	resolver Resolver
}

// NewHandler creates a new Handler with the given configuration and resolver.
func NewHandler(config *HandlerConfig, resolver Resolver) *Handler {
	return &Handler{
		config:   *config,
		resolver: resolver,
	}
}

// Router returns an http.Handler that sends every request, whatever its
// method or path, to the file handler.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Handle("/*", http.HandlerFunc(h.handleGet))
	r.NotFound(h.handleGet)
	r.MethodNotAllowed(h.handleGet)

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestPath := originalPath(r)

	out, err := h.resolver.Resolve(r.Context(), r.URL.Path)
	if err != nil {
		HandleError(w, requestPath, err)
		return
	}

	if out.Kind != softserve.OutcomeStream {
		WriteNotFound(w, requestPath)
		return
	}
	defer func() {
		if err := out.Stream.Close(); err != nil {
			slog.Warn("failed to close file", "path", out.Path, "err", err)
		}
	}()

	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	for chunk, err := range out.Stream.Chunks() {
		if err != nil {
			// Headers are already on the wire; dropping the connection is
			// the only signal left.
			if !errors.Is(err, context.Canceled) {
				slog.Error("stream read failed", "path", requestPath, "error", err)
			}
			panic(http.ErrAbortHandler)
		}
		if _, err := w.Write(chunk); err != nil {
			slog.Debug("client went away", "path", requestPath, "error", err)
			return
		}
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			slog.Debug("flush failed", "path", requestPath, "error", err)
			return
		}
	}
}

// originalPath returns the request path as the client sent it.
func originalPath(r *http.Request) string {
	if r.URL.Path == "*" {
		return "*"
	}
	return r.URL.EscapedPath()
}
