// Package storage holds resume content out-of-band and hands back opaque
// keys. The core only ever stores and returns a key, never file content.
package storage

import (
	"context"
	"io"
)

type Uploader interface {
	// Upload stores the content and returns the opaque key that callers
	// put on an application as resumeKey.
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}
