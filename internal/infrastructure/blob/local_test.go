package blob

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	k1 := ObjectKey("Photo.PNG")
	k2 := ObjectKey("Photo.PNG")

	require.True(t, strings.HasPrefix(k1, "posts/"))
	require.True(t, strings.HasSuffix(k1, ".png"), "extension should be lowercased: %s", k1)
	require.NotEqual(t, k1, k2, "keys must not collide for identical names")
}

func TestLocalSink_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "/uploads")
	require.NoError(t, err)

	payload := []byte("\x89PNG fake image bytes")
	ref, err := sink.Store(context.Background(), strings.NewReader(string(payload)), "cover.png", "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "/uploads/posts/"), "unexpected ref %s", ref)
	require.True(t, strings.HasSuffix(ref, ".png"))

	key := strings.TrimPrefix(ref, "/uploads/")
	got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	require.Equal(t, payload, got, "stored bytes must round-trip unchanged")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestLocalSink_CleansUpTempOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "/uploads")
	require.NoError(t, err)

	_, err = sink.Store(context.Background(), failingReader{}, "cover.png", "image/png")
	require.Error(t, err)

	// no files, temp or otherwise, may survive a failed upload
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		require.True(t, d.IsDir(), "orphaned file left behind: %s", path)
		return nil
	})
	require.NoError(t, err)
}
