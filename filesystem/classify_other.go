//go:build !unix

package filesystem

import (
	"errors"
	"syscall"
)

func isWrongEntryType(err error) bool {
	return errors.Is(err, syscall.ENOTDIR) || errors.Is(err, syscall.EISDIR)
}
