package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localFileManager struct {
	maxFileSize int64
}

func NewLocalFileManager(maxFileSize int64) FileManager {
	return &localFileManager{maxFileSize: maxFileSize}
}

// ReadUpload reads a local file, refusing anything over the size limit
// before reading it.
func (fm *localFileManager) ReadUpload(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := expandHome(strings.TrimSpace(ref))
	if path == "" {
		return nil, fmt.Errorf("no file given")
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if stat.Size() > fm.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, stat.Size(), fm.maxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	// The file may have grown since Stat.
	data, err := io.ReadAll(io.LimitReader(f, fm.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > fm.maxFileSize {
		return nil, fmt.Errorf("%w: limit %d", ErrTooLarge, fm.maxFileSize)
	}
	return data, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
