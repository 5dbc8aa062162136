package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultFileMode os.FileMode = 0o644

// WriteFile replaces the contents of path with data, keeping the existing
// file mode. When atomic is set the data is staged in a sibling temp file,
// synced, and renamed over path so readers never observe a partial write.
// Symlinks are resolved first so the link itself survives the rename.
func WriteFile(path string, data []byte, atomic bool) error {
	target, mode, err := resolveTarget(path)
	if err != nil {
		return err
	}
	if !atomic {
		return os.WriteFile(target, data, mode)
	}
	return writeAtomic(target, data, mode)
}

func resolveTarget(path string) (string, os.FileMode, error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", 0, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return "", 0, fmt.Errorf("%s is a directory", target)
	case err == nil:
		return target, info.Mode().Perm(), nil
	case errors.Is(err, fs.ErrNotExist):
		return target, defaultFileMode, nil
	default:
		return "", 0, fmt.Errorf("stat %s: %w", target, err)
	}
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	committed = true
	return nil
}
