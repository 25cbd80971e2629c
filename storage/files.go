// api/storage/files.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Client reads and writes the JSON documents backing the site's state.
// Every persisted store goes through this one client so the data
// directory and write strategy stay in one place.
type Client struct {
	dir string
}

func NewClient(dir string) (*Client, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data directory %s: %w", dir, err)
	}
	log.Printf("Storage client using data directory: %s", dir)
	return &Client{dir: dir}, nil
}

func (c *Client) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// ReadJSON unmarshals the named document into v. A missing or corrupt
// file is treated as "no prior state": it returns false and never an
// error, so callers can always initialize fresh.
func (c *Client) ReadJSON(name string, v any) bool {
	data, err := os.ReadFile(c.Path(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Error reading %s, starting fresh: %v", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Error parsing %s, starting fresh: %v", name, err)
		return false
	}
	return true
}

// WriteJSON writes v as indented JSON via a temp file and rename, so a
// crash mid-write never leaves a truncated document behind.
func (c *Client) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp := c.Path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, c.Path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
