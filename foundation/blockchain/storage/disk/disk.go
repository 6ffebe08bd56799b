// Package disk implements the ability to read and write the blockchain to a
// single JSON file on disk.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// Disk represents the serialization implementation for reading and storing
// the whole chain in one file on disk. This implements the database.Storage
// interface.
type Disk struct {
	mu     sync.Mutex
	dbPath string
}

// New constructs a Disk value for use. The directory holding the file is
// created if it doesn't exist.
func New(dbPath string) (*Disk, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since the file is
// opened and closed on every operation.
func (d *Disk) Close() error {
	return nil
}

// Load reads the chain from disk. A missing file is an empty chain.
func (d *Disk) Load() ([]database.Block, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := os.ReadFile(d.dbPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var blocks []database.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decoding chain file %s: %w", d.dbPath, err)
	}

	return blocks, nil
}

// Replace writes the whole chain to a temporary file in the same directory,
// flushes it and renames it over the chain file. Readers see either the old
// or the new chain, never a partial one.
func (d *Disk) Replace(blocks []database.Block) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Marshal the chain for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(d.dbPath), filepath.Base(d.dbPath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := f.Name()

	// Remove the temp file on any failure so nothing is left behind.
	success := false
	defer func() {
		if !success {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}

	if err := f.Sync(); err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, d.dbPath); err != nil {
		return err
	}
	success = true

	// The rename is only durable once the directory entry is flushed.
	return syncDir(filepath.Dir(d.dbPath))
}

// syncDir flushes the directory entries of the specified folder.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}
