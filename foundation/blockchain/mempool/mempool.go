// Package mempool maintains the pool of transfers waiting to be mined.
package mempool

import (
	"sync"

	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/mempool/selector"
)

// Mempool represents a cache of pending transfers kept in the order they
// were submitted.
type Mempool struct {
	pool     []database.Tx
	mu       sync.RWMutex
	selectFn selector.Func
}

// NewWithStrategy constructs a new mempool with specified select strategy.
func NewWithStrategy(strategy string) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	mp := Mempool{
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool and returns the new
// size of the pool.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Copy returns a copy of the pool in submission order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Tx, len(mp.pool))
	copy(trans, mp.pool)
	return trans
}

// Select uses the configured strategy to split the pool into the transfers
// for the next block and the ones that stay pending. The pool itself is not
// changed; call Replace with the remaining transfers once the block is
// committed.
func (mp *Mempool) Select(sheet *balance.Sheet, howMany int) (selected []database.Tx, remaining []database.Tx) {
	return mp.selectFn(sheet, mp.Copy(), howMany)
}

// Replace swaps the content of the pool.
func (mp *Mempool) Replace(trans []database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make([]database.Tx, len(trans))
	copy(mp.pool, trans)
}
