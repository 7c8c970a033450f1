package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/logger"
)

// PersonHandler reports where one person stands in every category of a year.
type PersonHandler struct {
	source Source
	logger logger.Logger
}

// NewPersonHandler creates a new person handler.
func NewPersonHandler(source Source, lg logger.Logger) *PersonHandler {
	return &PersonHandler{source: source, logger: lg}
}

type placement struct {
	Category string `json:"segmento"`
	Entry
}

type personResponse struct {
	Person     string      `json:"person"`
	Year       string      `json:"ano"`
	Placements []placement `json:"placements"`
}

// HandleGetPerson handles GET /api/pessoa/{nome}?ano=Y.
func (h *PersonHandler) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_person"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/pessoa/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: missing person", op, ErrBadRequest))
		return
	}

	ds, ok := load(w, r, h.source, h.logger, op)
	if !ok {
		return
	}
	year, err := resolveYear(ds, r.URL.Query().Get("ano"))
	if err != nil {
		writeYearError(w, err)
		return
	}

	var categories []string
	seen := make(map[string]bool)
	for _, rec := range ranking.FilterByYearAndCategory(ds, year, "") {
		if rec.Person() == name && !seen[rec.Category()] {
			seen[rec.Category()] = true
			categories = append(categories, rec.Category())
		}
	}
	if len(categories) == 0 {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%s: %w: %q in %s", op, ErrNotFound, name, year))
		return
	}
	sort.Strings(categories)

	out := personResponse{Person: name, Year: year}
	for _, category := range categories {
		for _, e := range entries(ranking.SortByScoreDescending(ranking.FilterByYearAndCategory(ds, year, category))) {
			if e.Person == name {
				out.Placements = append(out.Placements, placement{Category: category, Entry: e})
				break
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}
