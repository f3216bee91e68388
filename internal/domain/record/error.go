package record

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidData       = errors.New("invalid record data")
	ErrInvalidExpiration = errors.New("invalid expiration settings")
)

// PurgeError is returned by DeleteExpired when some expired records could not
// be removed. The records that were removed are still counted by the caller.
type PurgeError struct {
	Failed map[string]error
}

func (e *PurgeError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %v", id, e.Failed[id]))
	}
	return fmt.Sprintf("purge: %d record(s) not deleted: %s", len(ids), strings.Join(parts, "; "))
}

func (e *PurgeError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, err := range e.Failed {
		errs = append(errs, err)
	}
	return errs
}
