package traversal

import (
	"context"
	"strings"

	"judicial_scraper/domain/entities"
)

// noResultsMarker is the fragment of the remote system's modal message
// announcing an empty result set.
const noResultsMarker = "no generó resultados"

// runSearch submits the search for the currently selected path and
// classifies the response: no-results, results, or error. The first
// two dismiss the response view; the third hands the session to the
// recovery controller and abandons this path. Only exhausted recovery
// bubbles up as an error.
func (e *Engine) runSearch(ctx context.Context) error {
	params := e.state.Params()
	log := e.logger.WithField("path", params)

	if err := e.driver.SubmitSearch(ctx); err != nil {
		log.Errorf("Error performing search: %v", err)
		return e.recoverSession(ctx)
	}

	message, err := e.driver.ModalMessage(ctx)
	if err != nil {
		log.Errorf("Results modal never appeared: %v", err)
		return e.recoverSession(ctx)
	}

	if strings.Contains(message, noResultsMarker) {
		log.Info("No results found")
		return e.dismissOrRecover(ctx)
	}

	rows, err := e.driver.ReadResultRows(ctx)
	if err != nil {
		log.Errorf("Error extracting results: %v", err)
		return e.recoverSession(ctx)
	}

	record := entities.ResultRecord{
		SearchParams: params,
		SearchName:   e.params.SearchName,
		Rows:         buildRows(rows),
	}
	e.records = append(e.records, record)
	e.flush()
	log.WithField("rows", len(record.Rows)).Info("Extracted results")

	return e.dismissOrRecover(ctx)
}

// dismissOrRecover returns the UI to the form; if even that fails the
// session is recovered instead.
func (e *Engine) dismissOrRecover(ctx context.Context) error {
	if err := e.driver.DismissResults(ctx); err != nil {
		e.logger.Errorf("Error clicking back button: %v", err)
		return e.recoverSession(ctx)
	}
	return nil
}

// buildRows converts raw table cells into row records. Rows with fewer
// than five columns are skipped.
func buildRows(rows [][]string) []entities.RowRecord {
	out := make([]entities.RowRecord, 0, len(rows))
	for _, cells := range rows {
		if len(cells) < 5 {
			continue
		}
		out = append(out, entities.RowRecord{
			Radicado:        strings.TrimSpace(cells[0]),
			FechaRadicacion: strings.TrimSpace(cells[1]),
			Despacho:        strings.TrimSpace(cells[2]),
			Clase:           strings.TrimSpace(cells[3]),
			Sujetos:         strings.TrimSpace(cells[4]),
		})
	}
	return out
}
