package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/weave/internal/errors"
)

// FileSink writes documents to the local filesystem.
type FileSink struct {
	dir string
}

// NewFileSink creates a FileSink rooted at dir. With an empty dir keys are
// used as paths as given.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Put implements Sink. Missing parent directories are created.
func (s *FileSink) Put(ctx context.Context, key string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if key == "" {
		return "", errors.New("W151").WithDetail("The export key is empty.")
	}

	path := key
	if s.dir != "" {
		path = filepath.Join(s.dir, key)
		rel, err := filepath.Rel(s.dir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", errors.New("W151").
				WithDetail("The export key " + key + " escapes " + s.dir + ".")
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.New("W150").Wrap(err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", errors.New("W150").Wrap(err)
	}
	return path, nil
}
