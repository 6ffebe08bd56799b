// Package balance derives account balances by replaying the chain and
// provides a running balance sheet for block assembly.
package balance

import (
	"errors"
	"fmt"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
)

// ErrInsufficientBalance is returned when a sender can't cover a transfer.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Replay walks every transaction of every block in chain order and returns
// the resulting balances. The network account is never debited.
func Replay(blocks []database.Block) map[database.AccountID]float64 {
	sheet := NewSheet(nil)
	for _, block := range blocks {
		for _, tx := range block.Trans {
			sheet.apply(tx)
		}
	}

	return sheet.sheet
}

// Of returns the replayed balance for a single account.
func Of(blocks []database.Block, account database.AccountID) float64 {
	var bal float64
	for _, block := range blocks {
		for _, tx := range block.Trans {
			if tx.From == account && !tx.IsCoinbase() {
				bal -= tx.Amount
			}
			if tx.To == account {
				bal += tx.Amount
			}
		}
	}

	return bal
}

// =============================================================================

// Sheet represents the data representation to maintain running balances
// while transactions are selected for a block.
type Sheet struct {
	sheet map[database.AccountID]float64
}

// NewSheet constructs a new balance sheet for use, expects a starting
// balance sheet usually from a replay of the chain.
func NewSheet(sheet map[database.AccountID]float64) *Sheet {
	bs := Sheet{
		sheet: make(map[database.AccountID]float64, len(sheet)),
	}

	for account, value := range sheet {
		bs.sheet[account] = value
	}

	return &bs
}

// Balance returns the running balance for the account.
func (bs *Sheet) Balance(account database.AccountID) float64 {
	return bs.sheet[account]
}

// Copy makes a copy of the current balance sheet but returns the raw data.
func (bs *Sheet) Copy() map[database.AccountID]float64 {
	sheet := make(map[database.AccountID]float64, len(bs.sheet))
	for account, value := range bs.sheet {
		sheet[account] = value
	}
	return sheet
}

// ApplyTransaction performs the business logic for applying a transaction
// to the balance sheet. A transfer is applied whole or not at all.
func (bs *Sheet) ApplyTransaction(tx database.Tx) error {
	if !tx.IsCoinbase() && bs.sheet[tx.From] < tx.Amount {
		return fmt.Errorf("%w: %s has %v, needs %v", ErrInsufficientBalance, tx.From, bs.sheet[tx.From], tx.Amount)
	}

	bs.apply(tx)
	return nil
}

// apply moves the value without checking the sender can afford it.
func (bs *Sheet) apply(tx database.Tx) {
	if !tx.IsCoinbase() {
		bs.sheet[tx.From] -= tx.Amount
	}
	bs.sheet[tx.To] += tx.Amount
}
