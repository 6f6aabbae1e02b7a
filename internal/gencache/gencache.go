// Package gencache is a file-backed cache of raw generation replies, keyed
// by a hash of the exact request. It exists for local development and
// replay: iterating on the parser against a real reply without paying for
// the same generation twice. Production runs leave it disabled.
package gencache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one cached reply with metadata.
type Entry struct {
	Model     string    `json:"model"`
	FetchedAt time.Time `json:"fetched_at"`
	Reply     string    `json:"reply"`
}

// FileCache stores entries as JSON files in a single directory.
type FileCache struct {
	dir string
}

// New creates (if needed) the cache directory and returns a cache over it.
func New(dir string) (*FileCache, error) {
	if dir == "" {
		return nil, fmt.Errorf("gencache: dir required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Key derives a stable filename-safe key from the full request identity.
func Key(model, system, userPrompt string) string {
	h := sha256.New()
	for _, part := range []string{model, system, userPrompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x.json", h.Sum(nil))
}

// Read returns the cached entry for key if present and younger than maxAge.
// maxAge <= 0 disables expiry.
func (fc *FileCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	data, err := os.ReadFile(filepath.Join(fc.dir, key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if maxAge > 0 && time.Since(entry.FetchedAt) > maxAge {
		return &entry, false
	}
	return &entry, true
}

// Write stores an entry under key, atomically via rename.
func (fc *FileCache) Write(key string, entry *Entry) error {
	entry.FetchedAt = time.Now()

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(fc.dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
