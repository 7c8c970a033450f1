package api

import (
	"net/http"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/logger"
)

// StatsHandler summarises the dataset.
type StatsHandler struct {
	source Source
	logger logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(source Source, lg logger.Logger) *StatsHandler {
	return &StatsHandler{source: source, logger: lg}
}

type statsResponse struct {
	Records    int                       `json:"records"`
	Years      []int                     `json:"anos"`
	Categories map[string]map[string]int `json:"segmentos"`
}

// HandleStats handles GET /api/estatisticas: record counts per year and
// category. Rows without a year are only counted in records.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ds, ok := load(w, r, h.source, h.logger, op)
	if !ok {
		return
	}

	out := statsResponse{
		Records:    len(ds),
		Years:      ranking.UniqueYears(ds),
		Categories: make(map[string]map[string]int),
	}
	for _, rec := range ds {
		if _, ok := ranking.ParseYear(rec.Year()); !ok {
			continue
		}
		byCategory, ok := out.Categories[rec.Year()]
		if !ok {
			byCategory = make(map[string]int)
			out.Categories[rec.Year()] = byCategory
		}
		byCategory[rec.Category()]++
	}
	writeJSON(w, http.StatusOK, out)
}
