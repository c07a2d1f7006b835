package registry

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed registry.schema.json
var schemaJSON string

var fileSchema = jsonschema.MustCompileString("registry.schema.json", schemaJSON)

type fileDoc struct {
	Weights map[string]fileEntry `yaml:"weights"`
}

type fileEntry struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// LoadFiles builds a registry from the builtin table plus the given YAML
// files, applied in order. On a name collision the later source wins, so
// custom files override builtin entries.
func LoadFiles(paths ...string) (*Registry, error) {
	r := Builtin()
	for _, p := range paths {
		if err := r.applyFile(p); err != nil {
			return nil, err
		}
	}
	r.reindex()
	return r, nil
}

func (r *Registry) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry %s: %w", path, err)
	}

	// Validate the raw document before decoding into the typed struct, so
	// schema errors name the offending key instead of failing silently.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("registry %s: invalid yaml: %w", path, err)
	}
	if err := fileSchema.Validate(raw); err != nil {
		return fmt.Errorf("registry %s: %w", path, err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("registry %s: %w", path, err)
	}
	for name, fe := range doc.Weights {
		e, err := newEntry(name, fe.URL, fe.Description, path)
		if err != nil {
			return fmt.Errorf("registry %s: weight %q: %w", path, name, err)
		}
		r.entries[name] = e
	}
	return nil
}
