package generator

import (
	"github.com/chybatronik/busTicketSeed/pkg/errors"
)

// uniqueValues remembers values already emitted per field. A field shared by
// several tables (email) draws from one set, so values never repeat across them.
type uniqueValues struct {
	maxAttempts int
	seen        map[string]map[string]struct{}
}

func newUniqueValues(maxAttempts int) *uniqueValues {
	if maxAttempts <= 0 {
		maxAttempts = 1000
	}
	return &uniqueValues{
		maxAttempts: maxAttempts,
		seen:        make(map[string]map[string]struct{}),
	}
}

// next calls gen until it returns a value not yet seen for field
func (u *uniqueValues) next(table, field string, gen func() string) (string, error) {
	set, ok := u.seen[field]
	if !ok {
		set = make(map[string]struct{})
		u.seen[field] = set
	}

	for i := 0; i < u.maxAttempts; i++ {
		v := gen()
		if _, dup := set[v]; dup {
			continue
		}
		set[v] = struct{}{}
		return v, nil
	}
	return "", errors.NewUniqueExhaustedError(table, field, u.maxAttempts)
}
