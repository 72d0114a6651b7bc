// Package server exposes the fetch orchestrator as a small JSON API.
//
// The façade holds no logic of its own: handlers parse query parameters into
// filter state, call the orchestrator, and translate typed failures into
// HTTP statuses. It exists so the same core that backs the CLI can back a
// local dashboard or reverse proxy.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/guleriaakshit/open-lens/pkg/errors"
	"github.com/guleriaakshit/open-lens/pkg/fetch"
	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/query"
)

// Server wraps the orchestrator with an HTTP surface.
type Server struct {
	svc    *fetch.Service
	logger *log.Logger
}

// New creates a Server. A nil logger falls back to the package default.
func New(svc *fetch.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{svc: svc, logger: logger}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Route("/repos/{owner}/{repo}", func(r chi.Router) {
			r.Get("/issues", s.handleIssues)
			r.Get("/readme", s.handleReadme)
			r.Get("/languages", s.handleLanguages)
			r.Get("/labels", s.handleLabels)
		})
		r.Route("/users/{login}", func(r chi.Router) {
			r.Get("/", s.handleUser)
			r.Get("/repos", s.handleUserRepos)
		})
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	filters, page, userScope, err := parseSearchParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.svc.SearchRepositories(r.Context(), filters, page, userScope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	if err := github.ValidateRepoRef(owner, repo); err != nil {
		writeError(w, err)
		return
	}

	filters := query.DefaultIssueFilters()
	if v := r.URL.Query().Get("sort"); v != "" {
		sort, err := query.ParseIssueSort(v)
		if err != nil {
			writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "%s", err))
			return
		}
		filters.Sort = sort
	}
	if v := r.URL.Query().Get("order"); v != "" {
		order, err := query.ParseOrder(v)
		if err != nil {
			writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "%s", err))
			return
		}
		filters.Order = order
	}
	if v := r.URL.Query().Get("labels"); v != "" {
		filters.Labels = strings.Split(v, ",")
	}

	issues, err := s.svc.RepoIssues(r.Context(), owner, repo, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	if err := github.ValidateRepoRef(owner, repo); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.svc.Readme(r.Context(), owner, repo)))
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	if err := github.ValidateRepoRef(owner, repo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Languages(r.Context(), owner, repo))
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	if err := github.ValidateRepoRef(owner, repo); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Labels(r.Context(), owner, repo))
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	if err := github.ValidateOwner(login); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.UserProfile(r.Context(), login))
}

func (s *Server) handleUserRepos(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	if err := github.ValidateOwner(login); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.UserTopRepos(r.Context(), login))
}

// parseSearchParams maps query parameters onto filter state. Unknown sort
// and order values are rejected rather than passed upstream.
func parseSearchParams(r *http.Request) (query.FilterState, int, string, error) {
	q := r.URL.Query()
	filters := query.DefaultFilters()

	filters.Query = q.Get("q")
	if v := q.Get("languages"); v != "" {
		filters.Languages = strings.Split(v, ",")
	}
	if v := q.Get("license"); v != "" {
		filters.License = v
	}
	if v := q.Get("sort"); v != "" {
		sort, err := query.ParseSort(v)
		if err != nil {
			return query.FilterState{}, 0, "", apperrors.New(apperrors.ErrCodeInvalidInput, "%s", err)
		}
		filters.Sort = sort
	}
	if v := q.Get("order"); v != "" {
		order, err := query.ParseOrder(v)
		if err != nil {
			return query.FilterState{}, 0, "", apperrors.New(apperrors.ErrCodeInvalidInput, "%s", err)
		}
		filters.Order = order
	}

	var err error
	if filters.MinStars, err = intParam(q.Get("min_stars"), filters.MinStars); err != nil {
		return query.FilterState{}, 0, "", err
	}
	if filters.MaxStars, err = intParam(q.Get("max_stars"), filters.MaxStars); err != nil {
		return query.FilterState{}, 0, "", err
	}

	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		return query.FilterState{}, 0, "", err
	}
	if page < 1 {
		return query.FilterState{}, 0, "", apperrors.New(apperrors.ErrCodeInvalidInput, "page must be >= 1")
	}

	userScope := q.Get("user")
	if userScope != "" {
		if err := github.ValidateOwner(userScope); err != nil {
			return query.FilterState{}, 0, "", err
		}
	}

	return filters, page, userScope, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "not a number: %q", raw)
	}
	return n, nil
}

// errorBody is the JSON shape of a failed response.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = string(apperrors.GetCode(err))
	body.Error.Message = apperrors.UserMessage(err)
	writeJSON(w, statusFor(apperrors.GetCode(err)), body)
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidOwner, apperrors.ErrCodeInvalidRepo:
		return http.StatusBadRequest
	case apperrors.ErrCodeInvalidCredential:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFeatureDisabled:
		return http.StatusNotFound
	case apperrors.ErrCodePaginationExhausted:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUpstream, apperrors.ErrCodeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
