package filesystem

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sagarc03/softserve"
)

// Classify maps a low-level filesystem error onto the softserve taxonomy.
// Missing entries and path components of the wrong type are client input
// problems and become softserve.ErrNotFound; everything else is
// softserve.ErrInternal. The original error stays in the chain.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, softserve.ErrNotFound) || errors.Is(err, softserve.ErrInternal) {
		return err
	}

	if errors.Is(err, fs.ErrNotExist) || isWrongEntryType(err) {
		return fmt.Errorf("%w: %w", softserve.ErrNotFound, err)
	}

	return fmt.Errorf("%w: %w", softserve.ErrInternal, err)
}
