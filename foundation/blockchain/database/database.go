// Package database handles all the lower level support for maintaining the
// blockchain in memory and keeping it in sync with durable storage.
package database

import (
	"errors"
	"fmt"
	"sync"
)

// Database manages the chain of blocks and the storage it is persisted to.
type Database struct {
	mu      sync.RWMutex
	blocks  []Block
	storage Storage
}

// New constructs a new database and loads the chain from storage. If storage
// holds no chain, a genesis only chain is created and persisted.
func New(storage Storage, evHandler func(v string, args ...any)) (*Database, error) {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	blocks, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("loading chain: %w", err)
	}

	switch len(blocks) {
	case 0:
		evHandler("database: New: no chain found, creating genesis")

		blocks = []Block{GenesisBlock()}
		if err := storage.Replace(blocks); err != nil {
			return nil, fmt.Errorf("persisting genesis: %w", err)
		}

	default:
		evHandler("database: New: validating chain: blocks[%d]", len(blocks))

		if err := ValidateChain(blocks); err != nil {
			return nil, err
		}
	}

	db := Database{
		blocks:  blocks,
		storage: storage,
	}

	return &db, nil
}

// Close closes the storage underneath.
func (db *Database) Close() error {
	return db.storage.Close()
}

// Append validates the block is the next block of the chain, persists the
// whole chain and only then makes the block visible.
func (db *Database) Append(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	latest := db.blocks[len(db.blocks)-1]
	if err := block.ValidateBlock(latest); err != nil {
		return err
	}

	next := make([]Block, len(db.blocks), len(db.blocks)+1)
	copy(next, db.blocks)
	next = append(next, block)

	if err := db.storage.Replace(next); err != nil {
		return fmt.Errorf("persisting chain: %w", err)
	}

	db.blocks = next

	return nil
}

// LatestBlock returns the tip of the chain.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.blocks[len(db.blocks)-1]
}

// Height returns the number of blocks minus one. The genesis block is
// at height 0.
func (db *Database) Height() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return Height(db.blocks)
}

// Copy returns a copy of the chain. Blocks are never mutated once appended
// so the transaction slices are shared.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)
	return blocks
}

// GetBlock returns the block at the specified height.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, fmt.Errorf("block %d does not exist", num)
	}

	return db.blocks[num], nil
}

// =============================================================================

// Height returns the height of the chain, the number of blocks minus one.
func Height(blocks []Block) uint64 {
	if len(blocks) == 0 {
		return 0
	}
	return uint64(len(blocks) - 1)
}

// ValidateChain checks the chain starts with genesis and that every block
// links to its parent.
func ValidateChain(blocks []Block) error {
	if len(blocks) == 0 {
		return errors.Join(ErrChainCorrupted, errors.New("chain is empty"))
	}

	if !blocks[0].IsGenesis() {
		return errors.Join(ErrChainCorrupted, errors.New("first block is not genesis"))
	}

	for i := 1; i < len(blocks); i++ {
		if err := blocks[i].ValidateBlock(blocks[i-1]); err != nil {
			return errors.Join(ErrChainCorrupted, fmt.Errorf("block %d: %w", i, err))
		}
	}

	return nil
}
