package fileutil

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckAccess reports whether the current user may read path and, when
// write is set, also write it.
func CheckAccess(path string, write bool) error {
	mode := uint32(unix.R_OK)
	verb := "readable"
	if write {
		mode |= unix.W_OK
		verb = "readable and writable"
	}
	if err := unix.Access(path, mode); err != nil {
		return fmt.Errorf("%s is not %s: %w", path, verb, err)
	}
	return nil
}
