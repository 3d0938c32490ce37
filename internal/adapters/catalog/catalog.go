// Package catalog holds the country size-class data that drives click resolution.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed size_classes.toml
var builtinCatalog []byte

type Catalog struct {
	SizeClasses map[string]domain.SizeClass
	Thresholds  domain.ThresholdTable
}

// Builtin returns the catalog shipped with the binary.
func Builtin() (Catalog, error) {
	catalog, err := Decode(builtinCatalog)
	if err != nil {
		return Catalog{}, fmt.Errorf("decode builtin size classes: %w", err)
	}
	return catalog, nil
}

// Load returns the builtin catalog with the override file at path merged on top. An empty
// path returns the builtin catalog unchanged.
func Load(path string) (Catalog, error) {
	catalog, err := Builtin()
	if err != nil {
		return Catalog{}, err
	}
	if strings.TrimSpace(path) == "" {
		return catalog, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read size class file: %w", err)
	}
	override, err := Decode(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("decode size class file %s: %w", path, err)
	}

	return catalog.Merge(override), nil
}

func Decode(raw []byte) (Catalog, error) {
	var schema fileSchema
	if err := toml.Unmarshal(raw, &schema); err != nil {
		return Catalog{}, err
	}
	schema.applyDefaults()
	if err := schema.validateVersion(); err != nil {
		return Catalog{}, err
	}

	catalog := Catalog{
		SizeClasses: make(map[string]domain.SizeClass),
		Thresholds:  make(domain.ThresholdTable, len(schema.Thresholds)),
	}

	for rawClass, value := range schema.Thresholds {
		class, err := domain.ParseSizeClass(rawClass)
		if err != nil {
			return Catalog{}, fmt.Errorf("thresholds: %w", err)
		}
		if value <= 0 {
			return Catalog{}, fmt.Errorf("thresholds: %s must be positive, got %g", class, value)
		}
		catalog.Thresholds[class] = value
	}

	for rawClass, codes := range schema.Classes {
		class, err := domain.ParseSizeClass(rawClass)
		if err != nil {
			return Catalog{}, fmt.Errorf("classes: %w", err)
		}
		for _, rawCode := range codes {
			code := strings.ToUpper(strings.TrimSpace(rawCode))
			if code == "" {
				return Catalog{}, errors.New("classes: empty country code")
			}
			if existing, ok := catalog.SizeClasses[code]; ok && existing != class {
				return Catalog{}, fmt.Errorf("classes: %s listed as both %s and %s", code, existing, class)
			}
			catalog.SizeClasses[code] = class
		}
	}

	return catalog, nil
}

// Merge returns c with every entry of override applied on top.
func (c Catalog) Merge(override Catalog) Catalog {
	merged := Catalog{
		SizeClasses: make(map[string]domain.SizeClass, len(c.SizeClasses)+len(override.SizeClasses)),
		Thresholds:  make(domain.ThresholdTable, len(c.Thresholds)+len(override.Thresholds)),
	}
	for code, class := range c.SizeClasses {
		merged.SizeClasses[code] = class
	}
	for code, class := range override.SizeClasses {
		merged.SizeClasses[code] = class
	}
	for class, value := range c.Thresholds {
		merged.Thresholds[class] = value
	}
	for class, value := range override.Thresholds {
		merged.Thresholds[class] = value
	}
	return merged
}
