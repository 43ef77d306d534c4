package model

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source fetches the raw artifact bytes.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Name is the artifact name; its extension selects the codec.
	Name() string
	// Kind labels the source in logs and metrics, e.g. "file".
	Kind() string
}

// FileSource reads the artifact from the local filesystem.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source.
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingModel, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", s.Path, err)
	}
	return data, nil
}

func (s *FileSource) Name() string { return s.Path }
func (s *FileSource) Kind() string { return "file" }
