package blob

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalSink writes uploads under Dir and returns references below BaseURL,
// which the HTTP layer serves as static files.
type LocalSink struct {
	Dir     string
	BaseURL string
}

func NewLocalSink(dir, baseURL string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalSink{Dir: dir, BaseURL: baseURL}, nil
}

// Store writes to a temp file in the destination directory and renames it
// into place. The temp file is removed on every failure path so aborted
// uploads leave nothing behind.
func (s *LocalSink) Store(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	key := ObjectKey(originalName)
	dst := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	return path.Join(s.BaseURL, key), nil
}

var _ Sink = (*LocalSink)(nil)
