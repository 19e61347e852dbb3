// Package discovery scrapes configured funder websites for new grant
// opportunities and pulls deadline dates out of linked guideline PDFs.
package discovery

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the configuration for all discovery sources.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines a single funder website to scrape.
type SourceConfig struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`    // funder name stamped on discovered grants
	Seeds   []string `yaml:"seed_urls"`
	Enabled bool     `yaml:"enabled"`

	Selectors SelectorConfig `yaml:"selectors"`
	MaxPages  int            `yaml:"max_pages,omitempty"`
}

// SelectorConfig maps CSS selectors onto grant fields within a list page.
type SelectorConfig struct {
	Container   string `yaml:"container"` // wrapper for one grant entry
	Title       string `yaml:"title,omitempty"`
	Link        string `yaml:"link,omitempty"`
	Amount      string `yaml:"amount,omitempty"`
	Deadline    string `yaml:"deadline,omitempty"`
	Description string `yaml:"description,omitempty"`
	Guideline   string `yaml:"guideline,omitempty"` // anchor to a guidelines PDF
}

// LoadRegistry reads the embedded sources.yaml, or the file at path when one
// is given. Environment variables in the YAML (e.g. ${SCRAPER_API_KEY}) are
// expanded before parsing.
func LoadRegistry(path string) (*Registry, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = sourcesYAML.ReadFile("config/sources.yaml")
	}
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	var reg Registry
	if err := yaml.Unmarshal([]byte(expanded), &reg); err != nil {
		return nil, err
	}

	return &reg, nil
}
