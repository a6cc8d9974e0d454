//go:build unix

package filesystem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isWrongEntryType reports ENOTDIR and EISDIR.
func isWrongEntryType(err error) bool {
	return errors.Is(err, unix.ENOTDIR) || errors.Is(err, unix.EISDIR)
}
