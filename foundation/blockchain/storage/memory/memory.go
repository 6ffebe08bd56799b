// Package memory implements the ability to read and write the blockchain to
// memory using a slice.
package memory

import (
	"sync"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// Memory represents the serialization implementation for reading and storing
// the chain in memory. This implements the database.Storage interface.
type Memory struct {
	mu      sync.RWMutex
	blocks  []database.Block
	failErr error
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Load returns a copy of the chain held in memory.
func (m *Memory) Load() ([]database.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.blocks) == 0 {
		return nil, nil
	}

	blocks := make([]database.Block, len(m.blocks))
	copy(blocks, m.blocks)
	return blocks, nil
}

// Replace swaps the chain held in memory for a copy of the blocks.
func (m *Memory) Replace(blocks []database.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}

	m.blocks = make([]database.Block, len(blocks))
	copy(m.blocks, blocks)

	return nil
}

// FailReplace makes every following call to Replace return the error
// without storing anything. Passing nil restores normal behavior.
func (m *Memory) FailReplace(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failErr = err
}
