package state

import (
	"errors"
	"strconv"
	"strings"

	"github.com/cadocurrency/ledger/foundation/blockchain/balance"
)

// Set of errors returned to callers of the ledger. None of them are retried
// by the ledger.
var (
	ErrMissingFields       = errors.New("missing fields")
	ErrInvalidNonce        = errors.New("invalid nonce")
	ErrStaleJob            = errors.New("stale job")
	ErrInvalidShare        = errors.New("invalid share")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidTransfer     = errors.New("invalid transfer")
	ErrReservedAccount     = errors.New("reserved account")
	ErrInsufficientBalance = balance.ErrInsufficientBalance
)

// ParseNonce converts the decimal text of a nonce into its value.
func ParseNonce(s string) (uint64, error) {
	nonce, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidNonce
	}

	return nonce, nil
}
