package seedmodule

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

//go:embed data/catalog.cue
var catalogSchema []byte

// Catalog is the reference dataset loaded into an empty database
type Catalog struct {
	Genres []string      `yaml:"genres" json:"genres"`
	Films  []CatalogFilm `yaml:"films" json:"films"`
}

// CatalogFilm is one film of the catalog with its people and genres by name
type CatalogFilm struct {
	Title       string   `yaml:"title" json:"title"`
	ReleaseYear int      `yaml:"release_year" json:"release_year"`
	PosterURL   string   `yaml:"poster_url" json:"poster_url"`
	Synopsis    string   `yaml:"synopsis" json:"synopsis,omitempty"`
	Director    string   `yaml:"director" json:"director"`
	Actors      []string `yaml:"actors" json:"actors"`
	Genres      []string `yaml:"genres" json:"genres"`
}

// LoadCatalog reads the catalog at path, or the built-in one when path is
// empty, and validates it.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog and checks it against the catalog
// schema. Unknown keys are rejected.
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := validateCatalog(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func validateCatalog(catalog *Catalog) error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(catalogSchema, cue.Filename("catalog.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("invalid catalog schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Catalog"))
	if !def.Exists() {
		return errors.New("#Catalog definition not found in catalog schema")
	}

	value := def.Unify(ctx.Encode(catalog))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid catalog: %s", cueerrors.Details(err, nil))
	}
	return nil
}
