package traversal

import (
	"context"
	"errors"

	"judicial_scraper/domain/entities"
)

// selectionRetries bounds how often one driver interaction is retried
// on a transient fault before the caller escalates.
const selectionRetries = 3

// errExhausted is the internal backtracking signal: the current level
// has no real option at or past the requested index. It is a normal
// traversal event, not a fault.
var errExhausted = errors.New("level exhausted")

// withRetry runs fn up to attempts times, retrying only transient
// driver faults. Any other error, including errExhausted, is returned
// immediately. The context is honored between attempts.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = fn()
		if err == nil || !entities.IsDriverFault(err) {
			return err
		}
	}
	return err
}
