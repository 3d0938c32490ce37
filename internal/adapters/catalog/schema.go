package catalog

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int                 `toml:"version"`
	Thresholds map[string]float64  `toml:"thresholds"`
	Classes    map[string][]string `toml:"classes"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported size class schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
