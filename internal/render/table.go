// Package render turns filtered ranking rows into display structures and
// writes them out as HTML pages.
package render

import (
	"strconv"

	"github.com/okian/circuito/internal/domain/ranking"
)

// Medal marks the first three positions.
type Medal string

// Medal classes, also used as CSS class names.
const (
	MedalNone   Medal = ""
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

// Placeholder is shown instead of a table when a filter matches nothing.
const Placeholder = "Nenhum dado disponível para este filtro."

// Headers of every ranking table.
var Headers = []string{"Posição", "Pessoa cervejeira", "Pontuação"}

// Row is one rendered table line.
type Row struct {
	Position int
	Label    string
	Medal    Medal
	Person   string
	Score    string
}

// Table is a rendered ranking table. A table without rows shows Placeholder.
type Table struct {
	Headers     []string
	Rows        []Row
	Placeholder string
}

// Empty reports whether the placeholder replaces the table.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// TopEntry is one line of the compact home list.
type TopEntry struct {
	Position int
	Medal    Medal
	Person   string
	Points   string
}

// MedalFor returns the medal of a 1-based position.
func MedalFor(pos int) Medal {
	switch pos {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return MedalNone
	}
}

// PositionLabel renders a position as an ordinal, e.g. "4º".
func PositionLabel(pos int) string {
	return strconv.Itoa(pos) + "º"
}

// BuildTable lays out already filtered and sorted rows.
func BuildTable(rows ranking.Dataset) Table {
	if len(rows) == 0 {
		return Table{Headers: Headers, Placeholder: Placeholder}
	}
	t := Table{Headers: Headers, Rows: make([]Row, len(rows))}
	for i, r := range rows {
		pos := i + 1
		t.Rows[i] = Row{
			Position: pos,
			Label:    PositionLabel(pos),
			Medal:    MedalFor(pos),
			Person:   r.Person(),
			Score:    ranking.FormatScore(r.Score()),
		}
	}
	return t
}

// BuildTopList lays out the compact "medal name score pts" list.
func BuildTopList(rows ranking.Dataset) []TopEntry {
	out := make([]TopEntry, len(rows))
	for i, r := range rows {
		points := ranking.FormatScore(r.Score())
		if points != "" {
			points += " pts"
		}
		out[i] = TopEntry{
			Position: i + 1,
			Medal:    MedalFor(i + 1),
			Person:   r.Person(),
			Points:   points,
		}
	}
	return out
}
