package classify

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// curatedYAML is the curated classification data baked into the binary at
// compile time, so runs never depend on finding a data file on disk.
//
//go:embed data/curated.yml
var curatedYAML []byte

// curatedData matches the YAML structure in data/curated.yml.
type curatedData struct {
	NonPersonDirs      []string                     `yaml:"non_person_dirs"`
	NonPersonCamelcase []string                     `yaml:"non_person_camelcase"`
	NonPersonExact     []string                     `yaml:"non_person_exact"`
	AuxRoutes          map[string]map[string]string `yaml:"aux_routes"`
}

// loadCurated parses the embedded curated data.
func loadCurated() (*curatedData, error) {
	var data curatedData
	if err := yaml.Unmarshal(curatedYAML, &data); err != nil {
		return nil, fmt.Errorf("failed to parse curated data: %w", err)
	}
	if len(data.NonPersonExact) == 0 || len(data.NonPersonCamelcase) == 0 {
		return nil, fmt.Errorf("curated data is incomplete")
	}
	return &data, nil
}
