package blob

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sink persists an uploaded file and returns a reference clients can
// dereference: a URL path for the local sink, an absolute URL for object
// stores. The sink is selected by configuration at startup, never per request.
type Sink interface {
	Store(ctx context.Context, r io.Reader, originalName, contentType string) (string, error)
}

// ObjectKey builds a date-partitioned storage key that keeps the original
// file extension, e.g. posts/2026/08/31/9f0c3b1e-....png
func ObjectKey(originalName string) string {
	d := time.Now().UTC()
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("posts/%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}
