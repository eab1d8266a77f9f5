package config

// WikiConfig configures the wiki endpoints.
type WikiConfig struct {
	APIURL      string `yaml:"api_url"`      // api.php endpoint used by the writer
	SummaryPage string `yaml:"summary_page"` // page receiving the published report
	UserAgent   string `yaml:"user_agent"`
	Timeout     string `yaml:"timeout"`
}
