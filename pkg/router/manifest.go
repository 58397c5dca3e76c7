package router

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is a declarative route table, the alternative to file-based
// discovery for apps that want their navigation graph in one document.
// It is the only way to declare enum params.
type Manifest struct {
	Routes []ManifestRoute `json:"routes" yaml:"routes"`
}

// ManifestRoute declares one route.
type ManifestRoute struct {
	ID      string                   `json:"id" yaml:"id"`
	Pattern string                   `json:"pattern" yaml:"pattern"`
	Params  map[string]ManifestParam `json:"params,omitempty" yaml:"params,omitempty"`
}

// ManifestParam declares one parameter. Kind defaults to "string".
// Optionality of ordinary params is taken from the pattern's "?"
// marker, so it never needs restating here; the Optional field only
// matters for catch-alls, where it allows matching zero segments.
type ManifestParam struct {
	Kind     string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Optional bool     `json:"optional,omitempty" yaml:"optional,omitempty"`
	Enum     []string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// LoadManifest reads a manifest file and converts it to definitions.
// The format is chosen by extension: .yaml/.yml or .json.
func LoadManifest(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("manifest %s: unsupported extension (want .yaml, .yml or .json)", path)
	}
	return m.Definitions(path)
}

// Definitions converts the manifest into route definitions, filling
// schema entries for pattern params the author left implicit and
// syncing optionality with the pattern markers.
func (m *Manifest) Definitions(source string) ([]Definition, error) {
	defs := make([]Definition, 0, len(m.Routes))
	for i, mr := range m.Routes {
		if mr.ID == "" {
			return nil, fmt.Errorf("manifest route #%d has no id", i)
		}
		segs, err := parsePattern(mr.Pattern)
		if err != nil {
			return nil, fmt.Errorf("manifest route %q: %w: %v", mr.ID, ErrInvalidPattern, err)
		}

		schema := Schema{}
		for _, seg := range segs {
			if seg.kind == segLiteral {
				continue
			}
			mp := mr.Params[seg.val]
			spec := ParamSpec{
				Kind: Kind(mp.Kind),
				Enum: mp.Enum,
			}
			switch seg.kind {
			case segOptional:
				spec.Optional = true
			case segCatchAll:
				spec.Optional = mp.Optional
			}
			schema[seg.val] = spec
		}
		for name := range mr.Params {
			if _, ok := schema[name]; !ok {
				return nil, fmt.Errorf("manifest route %q: %w: schema names %q but the pattern does not",
					mr.ID, ErrSchemaMismatch, name)
			}
		}
		if len(schema) == 0 {
			schema = nil
		}

		defs = append(defs, Definition{
			ID:      mr.ID,
			Pattern: mr.Pattern,
			Params:  schema,
			Source:  source,
		})
	}
	return defs, nil
}
