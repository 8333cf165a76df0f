package traversal

import (
	"context"
	"fmt"

	"judicial_scraper/domain/entities"

	"github.com/sirupsen/logrus"
)

// recoveryAttempts bounds how often a full session recovery is retried
// before the run is given up as fatal.
const recoveryAttempts = 3

// recoverSession restores the browser to a primed form and re-selects
// every level the engine still considers chosen. The reloaded form has
// no memory of prior choices, so the in-memory cursor is only valid
// again after this repair pass. Selection state itself is never
// touched: the indexes recorded before the fault stay authoritative.
func (e *Engine) recoverSession(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= recoveryAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		e.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"path":    e.state.Params(),
		}).Warn("Recovering session")

		if err := e.resetForm(ctx); err != nil {
			lastErr = err
			continue
		}
		if err := e.redescend(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("session recovery failed after %d attempts: %w", recoveryAttempts, lastErr)
}

// resetForm force-navigates back to the form and re-runs the initial
// setup. Used both for the first load and for recovery.
func (e *Engine) resetForm(ctx context.Context) error {
	if err := e.driver.Navigate(ctx, e.formURL); err != nil {
		return fmt.Errorf("failed to reload form: %w", err)
	}
	if err := e.driver.PrepareForm(ctx, e.params.SearchName); err != nil {
		return fmt.Errorf("failed to prime form: %w", err)
	}
	return nil
}

// redescend re-selects, shallow to deep, every level with a recorded
// choice, stopping at the first unchosen level.
func (e *Engine) redescend(ctx context.Context) error {
	for _, level := range entities.Levels() {
		if !e.state.Chosen(level) {
			return nil
		}

		index := e.state.Index(level, 0)
		err := withRetry(ctx, selectionRetries, func() error {
			options, err := e.driver.ReadOptions(ctx, level)
			if err != nil {
				return err
			}
			if index >= len(options) {
				return fmt.Errorf("%w: option %d missing at %s after reload",
					entities.ErrElementNotFound, index, level.Name())
			}
			_, err = e.driver.SelectOption(ctx, level, index)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to re-select %s at index %d: %w", level.Name(), index, err)
		}
	}
	return nil
}
