package files

import (
	"context"
)

// FileManager fetches raw upload bytes for a reference supplied by the UI.
type FileManager interface {
	ReadUpload(ctx context.Context, ref string) ([]byte, error)
}
