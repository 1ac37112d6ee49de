package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mapping overrides the headers expected in an input file. Keys are
// canonical column names, values the header actually present in the file.
// Columns without an override match their canonical name verbatim.
type Mapping struct {
	Columns map[string]string `yaml:"columns"`
}

// LoadMapping reads a YAML column-mapping file. An empty path yields the
// identity mapping.
func LoadMapping(path string) (Mapping, error) {
	if path == "" {
		return Mapping{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to read column mapping: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Mapping{}, fmt.Errorf("failed to parse column mapping: %w", err)
	}

	for col := range m.Columns {
		if !known(col) {
			return Mapping{}, fmt.Errorf("column mapping references unknown column %q", col)
		}
	}

	return m, nil
}

// Header resolves the file header for a canonical column.
func (m Mapping) Header(col string) string {
	if h, ok := m.Columns[col]; ok && h != "" {
		return h
	}
	return col
}

func known(col string) bool {
	for _, c := range All() {
		if c == col {
			return true
		}
	}
	return false
}
