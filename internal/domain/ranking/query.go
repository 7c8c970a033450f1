package ranking

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// UniqueYears returns the distinct numeric years of ds, most recent first.
// Records with a blank or non-numeric Ano are skipped.
func UniqueYears(ds Dataset) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range ds {
		y, ok := ParseYear(r.Year())
		if !ok {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// ParseYear converts an Ano value to an integer year.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	// "2024.0" style exports
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// FilterByYearAndCategory keeps records whose Ano equals year and, when
// category is non-empty, whose Segmento equals category.
func FilterByYearAndCategory(ds Dataset, year, category string) Dataset {
	out := make(Dataset, 0, len(ds))
	for _, r := range ds {
		if r.Year() != year {
			continue
		}
		if category != "" && r.Category() != category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SortByScoreDescending returns a copy of rows ordered by score, highest first.
// Equal scores keep their relative order; unparseable scores count as 0.
func SortByScoreDescending(rows Dataset) Dataset {
	out := make(Dataset, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return scoreOrZero(out[i].Score()) > scoreOrZero(out[j].Score())
	})
	return out
}

// Top returns at most the first n rows.
func Top(rows Dataset, n int) Dataset {
	if n < 0 {
		n = 0
	}
	if len(rows) < n {
		n = len(rows)
	}
	return rows[:n:n]
}

// ParseScore parses a Pontuacao value. The second result is false for empty,
// malformed or non-finite values.
func ParseScore(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatScore renders a score with two fraction digits, or "" when it does
// not parse. Rounding works on the exact binary value and a tie goes away
// from zero, so 85.125 becomes 85.13 while 1.005 (stored just below) stays 1.00.
func FormatScore(s string) string {
	v, ok := ParseScore(s)
	if !ok {
		return ""
	}
	return new(big.Rat).SetFloat64(v).FloatString(2)
}

func scoreOrZero(s string) float64 {
	v, _ := ParseScore(s)
	return v
}
