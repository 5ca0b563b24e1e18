package config

// Config represents the structure of config.yml used by the tool.
// Only the fields currently needed by commands are modeled.
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Sources Sources `yaml:"sources"`
	Web     struct {
		Addr string `yaml:"addr"`
		UI   string `yaml:"ui"`
	} `yaml:"web"`
}

// Sources locates the four input sheets. Path is a local file or an http(s) URL.
type Sources struct {
	Plan        Source `yaml:"plan"`
	TimeEntries Source `yaml:"time_entries"`
	Causes      Source `yaml:"causes"`
	CauseTable  Source `yaml:"cause_table"`
}

type Source struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"` // empty = first sheet
}

// Defaults mirrors the layout the dashboard was first deployed with.
func Defaults() Config {
	var c Config
	c.DataDir = "data"
	c.Sources = Sources{
		Plan:        Source{Path: "documents/Projetos_em_Horas.xlsx", Sheet: "Extração de Dados"},
		TimeEntries: Source{Path: "documents/Horas_Detalhadas.xlsx"},
		Causes:      Source{Path: "documents/Causas.xlsx", Sheet: "Causas"},
		CauseTable:  Source{Path: "documents/Causas.xlsx", Sheet: "Detalhes"},
	}
	c.Web.Addr = ":8080"
	c.Web.UI = "./ui/dist"
	return c
}
