package controller

// Page ids, as declared by each page.
const (
	PageHome    PageID = "home"
	PageGeneral PageID = "ranking-geral"
	PageMasters PageID = "mestres"
)

// Render targets.
const (
	TargetHomeTop = "top3-home"
	TargetGeneral = "tabela-geral"
)

// Default category labels.
const (
	DefaultGeneralCategory = "Geral"
	defaultHomeTopN        = 3
)

// DefaultMasterCategories lists one category per beer style.
var DefaultMasterCategories = []string{
	"Mestre das Alemãs",
	"Mestre das Americanas",
	"Mestre das Belgas",
	"Mestre das Inglesas",
	"Mestre das Cervejas de Especialidade",
}

// PageID identifies which controller a page runs.
type PageID string

var pageTitles = map[PageID]string{
	PageHome:    "Início",
	PageGeneral: "Ranking geral",
	PageMasters: "Mestres por estilo",
}

// Title returns the navigation title of page, or the id itself.
func Title(page PageID) string {
	if t, ok := pageTitles[page]; ok {
		return t
	}
	return string(page)
}

// Settings carries the labels controllers filter on.
type Settings struct {
	GeneralCategory  string
	MasterCategories []string
	HomeTopN         int
}

// DefaultSettings returns the circuit's categories.
func DefaultSettings() Settings {
	masters := make([]string, len(DefaultMasterCategories))
	copy(masters, DefaultMasterCategories)
	return Settings{
		GeneralCategory:  DefaultGeneralCategory,
		MasterCategories: masters,
		HomeTopN:         defaultHomeTopN,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.GeneralCategory == "" {
		s.GeneralCategory = d.GeneralCategory
	}
	if len(s.MasterCategories) == 0 {
		s.MasterCategories = d.MasterCategories
	}
	if s.HomeTopN <= 0 {
		s.HomeTopN = d.HomeTopN
	}
	return s
}
