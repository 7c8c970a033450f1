package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/logger"
)

// YearsHandler lists the years present in the dataset.
type YearsHandler struct {
	source Source
	logger logger.Logger
}

// NewYearsHandler creates a new years handler.
func NewYearsHandler(source Source, lg logger.Logger) *YearsHandler {
	return &YearsHandler{source: source, logger: lg}
}

// HandleGetYears handles GET /api/anos, most recent first.
func (h *YearsHandler) HandleGetYears(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_years"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ds, ok := load(w, r, h.source, h.logger, op)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ranking.UniqueYears(ds))
}

// RankingHandler handles ranking requests.
type RankingHandler struct {
	source          Source
	generalCategory string
	logger          logger.Logger
}

// NewRankingHandler creates a new ranking handler; generalCategory is used
// when the request names none.
func NewRankingHandler(source Source, generalCategory string, lg logger.Logger) *RankingHandler {
	return &RankingHandler{
		source:          source,
		generalCategory: generalCategory,
		logger:          lg,
	}
}

type rankingResponse struct {
	Year     string  `json:"ano"`
	Category string  `json:"segmento"`
	Entries  []Entry `json:"entries"`
}

// HandleGetRanking handles GET /api/ranking?ano=Y&segmento=S&limite=N.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ranking"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()

	limit := -1
	if raw := q.Get("limite"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: limite must be a positive integer", op, ErrBadRequest))
			return
		}
		limit = n
	}

	ds, ok := load(w, r, h.source, h.logger, op)
	if !ok {
		return
	}
	year, err := resolveYear(ds, q.Get("ano"))
	if err != nil {
		writeYearError(w, err)
		return
	}
	category := q.Get("segmento")
	if category == "" {
		category = h.generalCategory
	}

	rows := ranking.SortByScoreDescending(ranking.FilterByYearAndCategory(ds, year, category))
	if limit > 0 {
		rows = ranking.Top(rows, limit)
	}
	writeJSON(w, http.StatusOK, rankingResponse{Year: year, Category: category, Entries: entries(rows)})
}
