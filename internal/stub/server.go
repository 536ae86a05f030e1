package stub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// trendingLimit is how many articles the trending endpoint reports.
const trendingLimit = 5

// Server exposes a Store over the six NewsHub content endpoints.
type Server struct {
	store  Store
	logger *log.Logger
}

// NewServer creates a stub server over the given store. A nil logger
// disables request logging.
func NewServer(store Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: store, logger: logger}
}

// Handler builds the route tree. The envelope of each endpoint differs
// on purpose; together they cover every shape the client's normalizer
// accepts.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Get("/categories/{slug}", s.handleCategoryBySlug)
		r.Get("/public/articles", s.handleArticles)
		r.Get("/public/articles/{slug}", s.handleArticleBySlug)
		r.Get("/trending", s.handleTrending)
		r.Get("/ticker/active", s.handleActiveTickers)
	})

	return r
}

// handleCategories answers {"success":true,"data":[...]}.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    categories,
	})
}

// handleCategoryBySlug answers the bare category object.
func (s *Server) handleCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := s.store.CategoryBySlug(r.Context(), slug)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "category not found"})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// handleArticles answers {"data":{"articles":[...],"total":N}}.
func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	articles, total, err := s.store.Articles(r.Context(), f)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"articles": articles,
			"total":    total,
		},
	})
}

// handleArticleBySlug answers {"data":{...}}.
func (s *Server) handleArticleBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	article, err := s.store.ArticleBySlug(r.Context(), slug)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "article not found"})
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": article})
}

// handleTrending answers {"articles":[...],"window":"24h"}.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.Trending(r.Context(), trendingLimit)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"window":   "24h",
	})
}

// handleActiveTickers answers {"data":[...]}.
func (s *Server) handleActiveTickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := s.store.ActiveTickers(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": tickers})
}

// filterFromQuery maps the feed's query parameters onto an
// ArticleFilter. Unparsable numbers fall back to the defaults.
func filterFromQuery(r *http.Request) ArticleFilter {
	q := r.URL.Query()
	f := ArticleFilter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		f.Page = v
	}
	if raw := q.Get("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.Featured = &v
		}
	}
	return f
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("store failure", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start).Round(time.Microsecond),
		)
	})
}

// ListenAndServe runs the stub on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("stub backend listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
