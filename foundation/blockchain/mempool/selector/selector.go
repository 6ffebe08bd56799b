// Package selector provides different transaction selecting algorithms.
package selector

import (
	"fmt"
	"strings"

	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// List of different select strategies.
const (
	StrategyFIFO = "fifo"
)

// Map of different select strategies with functions.
var strategies = map[string]Func{
	StrategyFIFO: fifoSelect,
}

// Func defines a function that takes the pending transactions in submission
// order and splits them into the transactions selected for the next block and
// the ones that must stay pending. The sheet holds the running balances and
// is updated for every selected transaction. Both returned slices MUST keep
// the relative order of the pending transactions. Receiving -1 for howMany
// means there is no limit on the number selected.
type Func func(sheet *balance.Sheet, pending []database.Tx, howMany int) (selected []database.Tx, remaining []database.Tx)

// Retrieve returns the specified select strategy function.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strings.ToLower(strategy)]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}
	return fn, nil
}
