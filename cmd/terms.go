package main

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// TermsFile is a reusable search preset: sectors, city, districts, and
// an optional per-district limit, loaded from YAML.
type TermsFile struct {
	Sectors   []string `yaml:"sectors"`
	City      string   `yaml:"city"`
	Districts []string `yaml:"districts"`
	Limit     int      `yaml:"limit"`
}

// loadTermsFile reads and validates a terms preset.
func loadTermsFile(path string) (*TermsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "terms: read file")
	}

	var tf TermsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, eris.Wrap(err, "terms: parse yaml")
	}
	if len(tf.Sectors) == 0 {
		return nil, eris.New("terms: at least one sector is required")
	}
	if tf.City == "" {
		return nil, eris.New("terms: city is required")
	}
	return &tf, nil
}
