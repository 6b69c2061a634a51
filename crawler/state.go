package crawler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// State tracks what has been crawled so re-runs are incremental and
// idempotent. The crawler owns a single instance; workers report into it
// through the Crawler's guarded accessors, the State itself is not a
// concurrent structure.
type State struct {
	LastCrawl     string
	CrawledURLs   map[string]struct{}
	ContentHashes map[string]string
}

type stateFile struct {
	LastCrawl     string            `json:"last_crawl"`
	CrawledURLs   []string          `json:"crawled_urls"`
	ContentHashes map[string]string `json:"content_hashes"`
}

// NewState returns an empty crawl state.
func NewState() *State {
	return &State{
		CrawledURLs:   make(map[string]struct{}),
		ContentHashes: make(map[string]string),
	}
}

// LoadState reads state from path. A missing file yields an empty state,
// never an error.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var f stateFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	s := NewState()
	s.LastCrawl = f.LastCrawl
	for _, u := range f.CrawledURLs {
		s.CrawledURLs[u] = struct{}{}
	}
	for u, h := range f.ContentHashes {
		s.ContentHashes[u] = h
	}
	return s, nil
}

// Save writes the full state to path. The write goes through a temp file and
// rename so a crash never leaves a truncated state behind.
func (s *State) Save(path string) error {
	urls := make([]string, 0, len(s.CrawledURLs))
	for u := range s.CrawledURLs {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	hashes := s.ContentHashes
	if hashes == nil {
		hashes = map[string]string{}
	}

	data, err := json.MarshalIndent(stateFile{
		LastCrawl:     s.LastCrawl,
		CrawledURLs:   urls,
		ContentHashes: hashes,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Reset clears the visited set and hash map in place, for a full refresh.
func (s *State) Reset() {
	s.LastCrawl = ""
	s.CrawledURLs = make(map[string]struct{})
	s.ContentHashes = make(map[string]string)
}
