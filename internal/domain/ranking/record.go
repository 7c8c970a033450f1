// Package ranking holds the ranking records read from the circuit CSV and
// the pure queries run over them.
package ranking

// Column names consumed from the CSV header.
const (
	ColumnYear     = "Ano"
	ColumnCategory = "Segmento"
	ColumnPerson   = "Pessoa"
	ColumnScore    = "Pontuacao"
)

// Record is one CSV data row keyed by header column.
// Records are never modified after parsing.
type Record map[string]string

// Year returns the raw Ano value.
func (r Record) Year() string { return r[ColumnYear] }

// Category returns the Segmento value.
func (r Record) Category() string { return r[ColumnCategory] }

// Person returns the display name.
func (r Record) Person() string { return r[ColumnPerson] }

// Score returns the raw Pontuacao value.
func (r Record) Score() string { return r[ColumnScore] }

// Dataset is the ordered collection of records from one CSV load.
type Dataset []Record
