package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// Balances writes the balances derived by replaying the chain. An empty
// account writes every account that has transacted.
func Balances(w io.Writer, blocks []database.Block, account database.AccountID) error {
	if len(blocks) == 0 {
		return database.ErrChainCorrupted
	}

	fmt.Fprintf(w, "LatestBlockHash: %s\n\n", blocks[len(blocks)-1].Hash)

	if account != "" {
		fmt.Fprintf(w, "Account: %s  Balance: %v\n", account, balance.Of(blocks, account))
		return nil
	}

	bals := balance.Replay(blocks)

	accounts := make([]database.AccountID, 0, len(bals))
	for act := range bals {
		accounts = append(accounts, act)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i] < accounts[j] })

	for _, act := range accounts {
		fmt.Fprintf(w, "Account: %s  Balance: %v\n", act, bals[act])
	}

	return nil
}
