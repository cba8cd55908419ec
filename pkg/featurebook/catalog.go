package featurebook

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file name extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Join(ErrUnsupportedFormat, fmt.Errorf("cannot infer catalog format of %q", name))
	}
}

//go:embed catalog.schema.json
var catalogSchema []byte

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("catalog.schema.json", bytes.NewReader(catalogSchema)); err != nil {
			schemaErr = err
			return
		}
		schemaCompiled, schemaErr = compiler.Compile("catalog.schema.json")
	})
	return schemaCompiled, schemaErr
}

// Decode parses a catalog document, validates its shape and maps it into features.
// YAML documents are validated against the same schema as JSON ones.
func Decode(data []byte, format Format, mapper Mapper) ([]feature.Feature, error) {
	var (
		records []Metadata
		doc     any
		err     error
	)

	switch format {
	case FormatJSON:
		doc, err = decodeJSON(data)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		if err := validate(doc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&records); err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		// Round-trip through JSON so both formats share one schema.
		raw, err := json.Marshal(records)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		doc, err = decodeJSON(raw)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		if err := validate(doc); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Join(ErrUnsupportedFormat, fmt.Errorf("format %q", format))
	}

	return mapper.ToFeatures(records)
}

// decodeJSON produces the generic document the validator expects, keeping
// numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return errors.Join(ErrInvalidCatalog, err)
	}
	if err := schema.Validate(doc); err != nil {
		return errors.Join(ErrInvalidCatalog, err)
	}
	return nil
}
