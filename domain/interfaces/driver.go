package interfaces

import (
	"context"

	"judicial_scraper/domain/entities"
)

// UIDriver defines the browser-facing contract the traversal engine
// consumes. Implementations wrap their failures in the fault classes
// from domain/entities (ErrElementNotFound, ErrTimeout,
// ErrStaleElement) so the engine can classify them with errors.Is.
type UIDriver interface {
	// Navigate loads the consultation form.
	Navigate(ctx context.Context, url string) error

	// PrepareForm primes a freshly loaded form: the "all processes"
	// option, the person type, and the name field.
	PrepareForm(ctx context.Context, searchName string) error

	// ReadOptions opens the level's dropdown and reads its option list
	// as rendered, placeholder included.
	ReadOptions(ctx context.Context, level entities.Level) ([]entities.Option, error)

	// SelectOption clicks the option at index in the level's dropdown
	// and returns its display text.
	SelectOption(ctx context.Context, level entities.Level, index int) (string, error)

	// SubmitSearch triggers the search for the currently selected path.
	SubmitSearch(ctx context.Context) error

	// ModalMessage waits for the response modal and returns its message.
	ModalMessage(ctx context.Context) (string, error)

	// ReadResultRows returns the cell texts of every data row in the
	// results table, header excluded.
	ReadResultRows(ctx context.Context) ([][]string, error)

	// DismissResults returns the UI to the form after a search, ready
	// for the next dropdown interaction.
	DismissResults(ctx context.Context) error

	// Close shuts the browser down.
	Close() error
}
