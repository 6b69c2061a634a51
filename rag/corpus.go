// Package rag turns the crawled article corpus into a searchable vector
// index and answers questions over it with streamed, cited responses.
package rag

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCorpusMissing is returned when ingestion runs before the crawler has
// produced a corpus file.
var ErrCorpusMissing = errors.New("corpus file not found, run the crawler first")

// corpusItem is the slice of an article record that ingestion needs. Extra
// corpus fields are ignored so the loader tolerates schema growth.
type corpusItem struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func loadCorpus(path string) ([]corpusItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCorpusMissing
		}
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	var items []corpusItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	return items, nil
}
