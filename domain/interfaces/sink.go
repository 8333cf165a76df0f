package interfaces

import "judicial_scraper/domain/entities"

// ResultSink durably stores the collected result sequence. Persist is
// idempotent: each call overwrites the previous document with the full
// sequence, so it is safe to call after every completed search.
type ResultSink interface {
	Persist(searchName string, records []entities.ResultRecord) error
}
