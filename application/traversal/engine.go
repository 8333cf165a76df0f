package traversal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"judicial_scraper/domain/entities"
	"judicial_scraper/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// FormURL is the address of the consultation form.
const FormURL = "https://consultaprocesos.ramajudicial.gov.co/Procesos/NombreRazonSocial"

// Engine walks the five-level selection tree depth-first, triggering a
// search for every complete path and persisting whatever the remote
// system returns. Execution is strictly sequential: one cursor, one
// outstanding UI interaction at a time.
type Engine struct {
	driver  interfaces.UIDriver
	sink    interfaces.ResultSink
	state   *entities.SelectionState
	params  entities.RunParams
	records []entities.ResultRecord
	logger  *logrus.Logger
	formURL string
}

// NewEngine - creates an engine over the given driver and sink
func NewEngine(driver interfaces.UIDriver, sink interfaces.ResultSink, params entities.RunParams, logger *logrus.Logger) *Engine {
	return &Engine{
		driver:  driver,
		sink:    sink,
		state:   entities.NewSelectionState(),
		params:  params,
		records: make([]entities.ResultRecord, 0),
		logger:  logger,
		formURL: FormURL,
	}
}

// Run opens the form and enumerates every reachable combination.
// Whatever happens, the records collected so far are flushed before
// returning, so an interruption or a fatal fault loses at most one
// in-flight search.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.params.Validate(); err != nil {
		return err
	}
	defer e.flush()

	err := withRetry(ctx, selectionRetries, func() error {
		return e.resetForm(ctx)
	})
	if err != nil {
		return fmt.Errorf("initial form setup failed: %w", err)
	}

	start := entities.Department
	if e.params.TargetDepartment != "" {
		if err := e.selectTargetDepartment(ctx); err != nil {
			return err
		}
		start = entities.City
	}

	return e.traverse(ctx, start)
}

// Records returns the result records collected so far.
func (e *Engine) Records() []entities.ResultRecord {
	return e.records
}

type selectionStatus int

const (
	selectionMade selectionStatus = iota
	levelExhausted
)

// traverse walks the tree from start with an explicit cursor of
// (level, attempt index) instead of the call stack, so deep option
// trees cannot grow recursion depth. Options are visited in rendered
// order from index 1; index 0 is the placeholder and never selectable.
func (e *Engine) traverse(ctx context.Context, start entities.Level) error {
	level, attempt := start, 1

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		status, text, err := e.attemptSelection(ctx, level, attempt)
		if err != nil {
			return err
		}

		switch status {
		case selectionMade:
			e.state.Select(level, attempt, text)
			if level == entities.Office {
				// Deepest level: the path is complete. Search, then
				// enumerate the remaining siblings before ascending.
				if err := e.runSearch(ctx); err != nil {
					return err
				}
				attempt++
				continue
			}
			level = level.Next()
			attempt = 1

		case levelExhausted:
			e.state.ResetFrom(level)
			if level == start {
				e.logger.Info("Finished processing all combinations")
				return nil
			}
			// Resume at the parent's next sibling: the subtree under
			// its current choice is fully explored.
			prev := level.Prev()
			attempt = e.state.Index(prev, 0) + 1
			e.state.ResetFrom(prev)
			level = prev
		}
	}
}

// attemptSelection opens the level's dropdown and tries to click the
// option at index. A list with only the placeholder or an index past
// the last option signals exhaustion. Transient faults are retried a
// bounded number of times; a persistently failing click also exhausts
// the level, so one flaky sibling is never silently skipped while the
// rest of the level keeps being enumerated.
func (e *Engine) attemptSelection(ctx context.Context, level entities.Level, index int) (selectionStatus, string, error) {
	var text string
	err := withRetry(ctx, selectionRetries, func() error {
		options, err := e.driver.ReadOptions(ctx, level)
		if err != nil {
			return err
		}
		if len(options) <= 1 || index >= len(options) {
			return errExhausted
		}
		text, err = e.driver.SelectOption(ctx, level, index)
		return err
	})

	switch {
	case err == nil:
		e.logger.WithFields(logrus.Fields{
			"level":  level.Name(),
			"index":  index,
			"option": text,
		}).Info("Selected option")
		return selectionMade, text, nil

	case errors.Is(err, errExhausted):
		e.logger.WithField("level", level.Name()).Info("No more options at level")
		return levelExhausted, "", nil

	case ctx.Err() != nil:
		return levelExhausted, "", ctx.Err()

	default:
		e.logger.WithFields(logrus.Fields{
			"level": level.Name(),
			"index": index,
			"path":  e.state.Params(),
		}).Warnf("Selection kept failing, treating level as exhausted: %v", err)
		return levelExhausted, "", nil
	}
}

// selectTargetDepartment scans the department list once for a
// case-insensitive exact match and selects it directly, bypassing
// enumeration of the other departments. A missing match is terminal
// for the run.
func (e *Engine) selectTargetDepartment(ctx context.Context) error {
	target := strings.TrimSpace(e.params.TargetDepartment)

	err := withRetry(ctx, selectionRetries, func() error {
		options, err := e.driver.ReadOptions(ctx, entities.Department)
		if err != nil {
			return err
		}
		for _, opt := range options {
			if opt.Index == 0 {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(opt.Text), target) {
				text, err := e.driver.SelectOption(ctx, entities.Department, opt.Index)
				if err != nil {
					return err
				}
				e.state.Select(entities.Department, opt.Index, text)
				return nil
			}
		}
		return fmt.Errorf("%w: %q", entities.ErrDepartmentNotFound, e.params.TargetDepartment)
	})
	if err != nil {
		return err
	}

	e.logger.WithFields(logrus.Fields{
		"department": e.state.Text(entities.Department),
		"index":      e.state.Index(entities.Department, 0),
	}).Info("Selected target department")
	return nil
}

// flush persists everything collected so far. Persist overwrites the
// whole document, so repeating it is safe.
func (e *Engine) flush() {
	if err := e.sink.Persist(e.params.SearchName, e.records); err != nil {
		e.logger.Errorf("Error saving results: %v", err)
	}
}
