package storage

import (
	"encoding/json"
	"os"

	"judicial_scraper/domain/entities"
	"judicial_scraper/domain/interfaces"

	"github.com/sirupsen/logrus"
)

type resultStore struct {
	path   string
	logger *logrus.Logger
}

// resultDocument is the on-disk shape. TotalResults counts result
// records, not table rows.
type resultDocument struct {
	SearchName   string                  `json:"search_name"`
	TotalResults int                     `json:"total_results"`
	Results      []entities.ResultRecord `json:"results"`
}

// NewResultStore - creates a JSON file sink at path
func NewResultStore(path string, logger *logrus.Logger) interfaces.ResultSink {
	return &resultStore{
		path:   path,
		logger: logger,
	}
}

// Persist - writes the full result sequence, replacing prior content
func (s *resultStore) Persist(searchName string, records []entities.ResultRecord) error {
	if records == nil {
		records = []entities.ResultRecord{}
	}

	doc := resultDocument{
		SearchName:   searchName,
		TotalResults: len(records),
		Results:      records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}

	s.logger.Infof("Results saved to %s", s.path)
	return nil
}
