package featurebook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/dmitrymomot/proteus/pkg/feature"
)

// Source loads the feature catalog.
type Source interface {
	GetFeatureBook(ctx context.Context) ([]feature.Feature, error)
}

// Option configures catalog sources.
type Option func(*options)

type options struct {
	mapper   Mapper
	s3Client S3Client
}

// WithDefaultOwner assigns owner to catalog records that do not name one.
func WithDefaultOwner(owner string) Option {
	return func(o *options) {
		o.mapper.DefaultOwner = owner
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MemorySource serves a fixed list of features.
type MemorySource struct {
	features []feature.Feature
}

func NewMemorySource(features ...feature.Feature) *MemorySource {
	return &MemorySource{features: slices.Clone(features)}
}

// GetFeatureBook returns a copy of the configured list.
func (s *MemorySource) GetFeatureBook(context.Context) ([]feature.Feature, error) {
	return slices.Clone(s.features), nil
}

// FileSource reads a catalog document from a file system.
// The document is read on every call so edits show up without a restart.
type FileSource struct {
	fsys   fs.FS
	name   string
	format Format
	mapper Mapper
}

// NewJSONSource reads a JSON catalog named name from fsys.
func NewJSONSource(fsys fs.FS, name string, opts ...Option) *FileSource {
	return &FileSource{fsys: fsys, name: name, format: FormatJSON, mapper: applyOptions(opts).mapper}
}

// NewYAMLSource reads a YAML catalog named name from fsys.
func NewYAMLSource(fsys fs.FS, name string, opts ...Option) *FileSource {
	return &FileSource{fsys: fsys, name: name, format: FormatYAML, mapper: applyOptions(opts).mapper}
}

// NewFileSource reads the catalog at path on disk, choosing the format by extension.
func NewFileSource(path string, opts ...Option) (*FileSource, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{
		fsys:   os.DirFS(filepath.Dir(abs)),
		name:   filepath.Base(abs),
		format: format,
		mapper: applyOptions(opts).mapper,
	}, nil
}

func (s *FileSource) GetFeatureBook(ctx context.Context) ([]feature.Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, s.name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Join(ErrCatalogNotFound, err)
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToReadCatalog, err)
	}

	features, err := Decode(data, s.format, s.mapper)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return features, nil
}
