package csvsource

import (
	"strings"

	"github.com/okian/circuito/internal/domain/ranking"
)

const separator = ";"

// Parse turns raw CSV text into a dataset. The first non-empty line is the
// header; rows shorter than the header get empty values and extra fields are
// dropped. Quoting is not supported.
func Parse(raw string) ranking.Dataset {
	lines := make([]string, 0)
	for _, l := range strings.Split(raw, "\n") {
		// TrimSpace also removes the CR of CRLF endings.
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return ranking.Dataset{}
	}

	header := strings.Split(lines[0], separator)
	ds := make(ranking.Dataset, 0, len(lines)-1)
	for _, line := range lines[1:] {
		parts := strings.Split(line, separator)
		r := make(ranking.Record, len(header))
		for i, col := range header {
			if i < len(parts) {
				r[col] = parts[i]
			} else {
				r[col] = ""
			}
		}
		ds = append(ds, r)
	}
	return ds
}
