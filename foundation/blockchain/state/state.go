// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/difficulty"
	"github.com/cadocurrency/ledger/foundation/blockchain/genesis"
	"github.com/cadocurrency/ledger/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of jobs, shares and transfers.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Storage        database.Storage
	Genesis        genesis.Genesis
	SelectStrategy string
	EvHandler      EventHandler
	Now            func() time.Time
}

// State manages the ledger. Every operation that reads or changes the chain,
// the participant table or the mempool runs under one mutex so submissions
// and transfers are serialized against each other.
type State struct {
	mu        sync.Mutex
	evHandler EventHandler
	now       func() time.Time

	genesis    genesis.Genesis
	db         *database.Database
	mempool    *mempool.Mempool
	difficulty *difficulty.Controller
}

// New constructs a new ledger for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	// Access the storage for the blockchain. If nothing has been persisted
	// yet a genesis chain is created.
	db, err := database.New(cfg.Storage, ev)
	if err != nil {
		return nil, err
	}

	strategy := cfg.SelectStrategy
	if strategy == "" {
		strategy = "fifo"
	}

	// Construct a mempool with the specified select strategy.
	mempool, err := mempool.NewWithStrategy(strategy)
	if err != nil {
		return nil, err
	}

	// Construct the participant table using the consensus parameters.
	ctrl := difficulty.New(difficulty.Config{
		Default:         cfg.Genesis.DefaultDifficulty,
		Min:             cfg.Genesis.MinDifficulty,
		Max:             cfg.Genesis.MaxDifficulty,
		TargetShareTime: cfg.Genesis.TargetShareTime(),
	})

	state := State{
		evHandler: ev,
		now:       now,

		genesis:    cfg.Genesis,
		db:         db,
		mempool:    mempool,
		difficulty: ctrl,
	}

	ev("state: New: ledger ready: height[%d]: tip[%s]", db.Height(), db.LatestBlock().Hash)

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: Shutdown: closing storage")

	return s.db.Close()
}
