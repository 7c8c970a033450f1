// Package api declares the JSON contracts of the ranking and the route
// registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/circuito/internal/adapters/csvsource"
	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/internal/render"
	"github.com/okian/circuito/pkg/logger"
)

// Source provides the dataset. It is loaded again on every request.
type Source interface {
	Load(ctx context.Context) (ranking.Dataset, error)
}

// Entry is one ranked line as returned by the ranking endpoints.
type Entry struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Person   string `json:"person"`
	Score    string `json:"score"`
	Medal    string `json:"medal,omitempty"`
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler  *HealthHandler
	yearsHandler   *YearsHandler
	rankingHandler *RankingHandler
	personHandler  *PersonHandler
	statsHandler   *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(source Source, generalCategory string) *Server {
	if generalCategory == "" {
		generalCategory = "Geral"
	}
	lg := logger.Named("api")
	return &Server{
		healthHandler:  NewHealthHandler(),
		yearsHandler:   NewYearsHandler(source, lg),
		rankingHandler: NewRankingHandler(source, generalCategory, lg),
		personHandler:  NewPersonHandler(source, lg),
		statsHandler:   NewStatsHandler(source, lg),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/anos", MetricsMiddleware(s.yearsHandler.HandleGetYears, "api_years"))
	mux.HandleFunc("/api/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "api_ranking"))
	mux.HandleFunc("/api/pessoa/", MetricsMiddleware(s.personHandler.HandleGetPerson, "api_person"))
	mux.HandleFunc("/api/estatisticas", MetricsMiddleware(s.statsHandler.HandleStats, "api_stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// load fetches the dataset, answering the request itself on failure.
func load(w http.ResponseWriter, r *http.Request, source Source, lg logger.Logger, op string) (ranking.Dataset, bool) {
	ds, err := source.Load(r.Context())
	if err == nil {
		return ds, true
	}
	lg.Error(r.Context(), "loading ranking failed",
		logger.String("op", op),
		logger.String("request_id", RequestID(r.Context())),
		logger.Error(err),
	)
	if csvsource.IsFetchError(err) {
		writeError(w, http.StatusBadGateway, "upstream_error", fmt.Errorf("%s: %w", op, ErrUpstream))
		return nil, false
	}
	writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
	return nil, false
}

// resolveYear picks the requested year, or the most recent one when raw is
// empty. Malformed values wrap ErrBadRequest, absent ones ErrNotFound.
func resolveYear(ds ranking.Dataset, raw string) (string, error) {
	years := ranking.UniqueYears(ds)
	if raw == "" {
		if len(years) == 0 {
			return "", fmt.Errorf("%w: no years in dataset", ErrNotFound)
		}
		return strconv.Itoa(years[0]), nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid year %q", ErrBadRequest, raw)
	}
	for _, known := range years {
		if known == y {
			return strconv.Itoa(y), nil
		}
	}
	return "", fmt.Errorf("%w: year %d", ErrNotFound, y)
}

func writeYearError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBadRequest) {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	writeError(w, http.StatusNotFound, "not_found", err)
}

func entries(rows ranking.Dataset) []Entry {
	table := render.BuildTable(rows)
	out := make([]Entry, len(table.Rows))
	for i, row := range table.Rows {
		out[i] = Entry{
			Position: row.Position,
			Label:    row.Label,
			Person:   row.Person,
			Score:    row.Score,
			Medal:    string(row.Medal),
		}
	}
	return out
}
