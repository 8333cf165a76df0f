package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"judicial_scraper/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func record(radicado string) entities.ResultRecord {
	return entities.ResultRecord{
		SearchParams: map[string]string{"department": "ANTIOQUIA"},
		SearchName:   "ACME",
		Rows: []entities.RowRecord{
			{Radicado: radicado, FechaRadicacion: "2024-01-01", Despacho: "D", Clase: "C", Sujetos: "S"},
		},
	}
}

func TestPersistWritesDocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store := NewResultStore(path, testLogger())

	require.NoError(t, store.Persist("ACME", []entities.ResultRecord{record("R1"), record("R2")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "search_name")
	assert.Contains(t, doc, "total_results")
	assert.Contains(t, doc, "results")

	var parsed resultDocument
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "ACME", parsed.SearchName)
	assert.Equal(t, 2, parsed.TotalResults, "total_results counts records, not rows")
	require.Len(t, parsed.Results, 2)
	assert.Equal(t, "R1", parsed.Results[0].Rows[0].Radicado)
}

func TestPersistOverwritesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store := NewResultStore(path, testLogger())

	require.NoError(t, store.Persist("ACME", []entities.ResultRecord{record("R1")}))
	require.NoError(t, store.Persist("ACME", []entities.ResultRecord{record("R1"), record("R2")}))

	var parsed resultDocument
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, 2, parsed.TotalResults)
}

func TestPersistEmptySequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store := NewResultStore(path, testLogger())

	require.NoError(t, store.Persist("ACME", nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"results": []`, "empty sequence is an array, not null")

	var parsed resultDocument
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Zero(t, parsed.TotalResults)
}
