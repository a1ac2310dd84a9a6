// Package chi serves stored indexes over a read-only HTTP API routed with
// github.com/go-chi/chi.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/javadex"
	"github.com/fwojciec/javadex/javadoc"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Default limits for list endpoints.
const (
	DefaultSearchLimit = 20
	DefaultMemberLimit = 100
	MaxLimit           = 1000
	suggestionCount    = 5
)

// Default timeouts for ListenAndServe.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Server exposes stored indexes over HTTP.
type Server struct {
	indexes javadex.IndexService
	members javadex.MemberService
	search  javadex.SearchService
	logger  *slog.Logger
	metrics *Metrics
	names   map[string]bool
	router  chi.Router

	// ReadTimeout bounds reading a request. Zero uses DefaultReadTimeout.
	ReadTimeout time.Duration
}

// NewServer creates a Server. When names is non-empty only those indexes
// are visible; others answer 404.
func NewServer(indexes javadex.IndexService, members javadex.MemberService, search javadex.SearchService, logger *slog.Logger, names ...string) *Server {
	s := &Server{
		indexes: indexes,
		members: members,
		search:  search,
		logger:  logger,
		metrics: NewMetrics(),
	}
	if len(names) > 0 {
		s.names = make(map[string]bool, len(names))
		for _, n := range names {
			s.names[n] = true
		}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/indexes", s.handleIndexes)
	r.Route("/indexes/{name}", func(r chi.Router) {
		r.Get("/", s.handleIndex)
		r.Get("/search", s.handleSearch)
		r.Get("/members", s.handleMembers)
		r.Get("/member-search-index.js", s.handleScript)
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, javadex.Errorf(javadex.ENOTFOUND, "no route for %s", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error:   javadex.ENOTIMPLEMENTED,
			Message: r.Method + " not allowed",
		})
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	readTimeout := s.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return javadex.Errorf(javadex.EUNAVAILABLE, "listen on %s: %v", addr, err)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// indexResponse is the JSON form of a stored index.
type indexResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	ContentHash string    `json:"contentHash"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toIndexResponse(idx *javadex.Index) indexResponse {
	return indexResponse{
		ID:          idx.ID,
		Name:        idx.Name,
		SourceURL:   idx.SourceURL,
		ContentHash: idx.ContentHash,
		MemberCount: idx.MemberCount,
		CreatedAt:   idx.CreatedAt,
	}
}

// memberResponse decorates a member with its qualified name and link.
type memberResponse struct {
	*javadex.Member
	Name string `json:"name"`
	Href string `json:"href"`
	Tier string `json:"tier,omitempty"`
}

func toMemberResponse(m *javadex.Member) memberResponse {
	return memberResponse{Member: m, Name: m.QualifiedName(), Href: m.Href()}
}

type searchResponse struct {
	Query       string           `json:"query"`
	Results     []memberResponse `json:"results"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

type membersResponse struct {
	Members []memberResponse `json:"members"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIndexes(w http.ResponseWriter, r *http.Request) {
	indexes, err := s.indexes.FindIndexes(r.Context(), javadex.IndexFilter{})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := make([]indexResponse, 0, len(indexes))
	for _, idx := range indexes {
		if s.visible(idx.Name) {
			resp = append(resp, toIndexResponse(idx))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := s.findIndex(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toIndexResponse(idx))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	idx, err := s.findIndex(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	query := q.Get("q")
	limit, err := parseLimit(q.Get("limit"), DefaultSearchLimit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	results, err := s.search.Search(r.Context(), query, javadex.SearchOptions{
		IndexID: idx.ID,
		Package: q.Get("package"),
		Class:   q.Get("class"),
		Limit:   limit,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := searchResponse{Query: query, Results: make([]memberResponse, 0, len(results))}
	for _, res := range results {
		m := toMemberResponse(res.Member)
		m.Tier = res.Tier.String()
		resp.Results = append(resp.Results, m)
	}

	tier := "none"
	if len(results) > 0 {
		tier = results[0].Tier.String()
	} else {
		members, err := s.members.FindMembers(r.Context(), javadex.MemberFilter{IndexID: &idx.ID})
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		resp.Suggestions = javadex.Suggest(members, query, suggestionCount)
	}
	s.metrics.observeSearch(idx.Name, tier)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	idx, err := s.findIndex(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	limit, err := parseLimit(q.Get("limit"), DefaultMemberLimit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	offset, err := parseOffset(q.Get("offset"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	filter := javadex.MemberFilter{IndexID: &idx.ID, Offset: offset, Limit: limit}
	if v := q.Get("package"); v != "" {
		filter.Package = &v
	}
	if v := q.Get("class"); v != "" {
		filter.Class = &v
	}
	if v := q.Get("prefix"); v != "" {
		filter.LabelPrefix = &v
	}

	members, err := s.members.FindMembers(r.Context(), filter)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := membersResponse{Members: make([]memberResponse, 0, len(members)), Offset: offset, Limit: limit}
	for _, m := range members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	idx, err := s.findIndex(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	members, err := s.members.FindMembers(r.Context(), javadex.MemberFilter{IndexID: &idx.ID})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("ETag", strconv.Quote(idx.ContentHash))
	if err := javadoc.Encode(w, javadoc.FromLayout(idx.Layout, members)); err != nil {
		s.logger.Error("encode index", "index", idx.Name, "err", err)
	}
}

// findIndex resolves the {name} path parameter to a visible index.
func (s *Server) findIndex(r *http.Request) (*javadex.Index, error) {
	name := chi.URLParam(r, "name")
	if !s.visible(name) {
		return nil, javadex.Errorf(javadex.ENOTFOUND, "index %q not found", name)
	}
	return s.indexes.FindIndexByName(r.Context(), name)
}

func (s *Server) visible(name string) bool {
	return s.names == nil || s.names[name]
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if javadex.ErrorCode(err) == javadex.EINTERNAL {
		s.logger.Error("internal error", "path", r.URL.Path, "request_id", chimw.GetReqID(r.Context()), "err", err)
	}
	writeError(w, err)
}

// writeError maps an application error code to an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	code := javadex.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case javadex.ENOTFOUND:
		status = http.StatusNotFound
	case javadex.EINVALID:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: code, Message: javadex.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseLimit(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > MaxLimit {
		return 0, javadex.Errorf(javadex.EINVALID, "limit must be between 1 and %d", MaxLimit)
	}
	return n, nil
}

func parseOffset(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, javadex.Errorf(javadex.EINVALID, "offset must be a non-negative integer")
	}
	return n, nil
}

// recoverer turns a handler panic into a JSON 500.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("panic", "path", r.URL.Path, "request_id", chimw.GetReqID(r.Context()), "panic", rec)
				writeError(w, javadex.Errorf(javadex.EINTERNAL, "Internal error."))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one log line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := chimw.GetReqID(r.Context())
		if requestID != "" {
			w.Header().Set("X-Request-ID", requestID)
		}

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", requestID,
		)
	})
}
