package source

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// FileSource reads the fixture sheet from the local filesystem on every call.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: strings.TrimSpace(path)}
}

func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read fixture sheet path=%s: %w", s.path, err)
	}
	return string(raw), nil
}
