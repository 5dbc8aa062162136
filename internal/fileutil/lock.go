package fileutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockRetryDelay = 50 * time.Millisecond

// LockPath returns the advisory lock file guarding path. Lock files live in
// the temp directory, named after a UUIDv5 of the resolved absolute path.
func LockPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs))
	return filepath.Join(os.TempDir(), "qrcmigrate-"+id.String()+".lock"), nil
}

// Lock blocks until the advisory lock for path is held or ctx is done. The
// returned function releases it.
func Lock(ctx context.Context, path string) (func() error, error) {
	lockPath, err := LockPath(path)
	if err != nil {
		return nil, err
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("acquire lock %s: not acquired", lockPath)
	}
	return lock.Unlock, nil
}
