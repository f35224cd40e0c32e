package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes export files into a directory. Used by the CLI.
type DirSink struct {
	Dir string
}

func (s DirSink) Deliver(_ context.Context, file File) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
