package public

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/state"
)

type jobRequest struct {
	MinerID string `json:"miner_id" validate:"required"`
}

type job struct {
	JobID      string  `json:"job_id"`
	Seed       string  `json:"seed"`
	Difficulty int     `json:"difficulty"`
	Threshold  uint64  `json:"threshold"`
	Height     uint64  `json:"height"`
	Reward     float64 `json:"reward"`
	PrefixLen  int     `json:"prefix_len"`
}

func toJob(j state.Job) job {
	return job{
		JobID:      j.Seed,
		Seed:       j.Seed,
		Difficulty: j.Difficulty,
		Threshold:  j.Threshold,
		Height:     j.Height,
		Reward:     j.Reward,
		PrefixLen:  j.PrefixLen,
	}
}

// shareRequest accepts the nonce as either a JSON number or a decimal string.
type shareRequest struct {
	MinerID string          `json:"miner_id" validate:"required"`
	Seed    string          `json:"seed" validate:"required"`
	Nonce   json.RawMessage `json:"nonce" validate:"required"`
}

// nonce decodes the raw nonce value.
func (sr shareRequest) nonce() (uint64, error) {
	raw := strings.TrimSpace(string(sr.Nonce))
	if raw == "" || raw == "null" {
		return 0, state.ErrMissingFields
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return 0, state.ErrInvalidNonce
		}
		return state.ParseNonce(s)
	}

	return state.ParseNonce(raw)
}

type shareAccepted struct {
	Accepted   bool    `json:"accepted"`
	Hash       string  `json:"hash"`
	Height     uint64  `json:"height"`
	Reward     float64 `json:"reward"`
	Balance    float64 `json:"balance"`
	Difficulty int     `json:"difficulty"`
	ShareTime  float64 `json:"share_time"`
}

func toShareAccepted(s state.Share) shareAccepted {
	return shareAccepted{
		Accepted:   true,
		Hash:       s.Hash,
		Height:     s.Height,
		Reward:     s.Reward,
		Balance:    s.Balance,
		Difficulty: s.Difficulty,
		ShareTime:  s.ShareTime.Seconds(),
	}
}

type shareRejected struct {
	Accepted bool   `json:"accepted"`
	Error    string `json:"error"`
}

type transferRequest struct {
	From   string  `json:"from" validate:"required"`
	To     string  `json:"to" validate:"required"`
	Amount float64 `json:"amount"`
}

type transferAccepted struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type transferRejected struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type balance struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance float64            `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

type legacyBalance struct {
	Miner   database.AccountID `json:"miner"`
	Balance float64            `json:"balance"`
}

type tx struct {
	From     database.AccountID `json:"from"`
	FromName string             `json:"from_name"`
	To       database.AccountID `json:"to"`
	ToName   string             `json:"to_name"`
	Amount   float64            `json:"amount"`
}

type block struct {
	Index        uint64             `json:"index"`
	TimeStamp    float64            `json:"timestamp"`
	PrevHash     string             `json:"prev_hash"`
	Hash         string             `json:"hash"`
	Nonce        uint64             `json:"nonce"`
	Miner        database.AccountID `json:"miner"`
	MinerName    string             `json:"miner_name"`
	Transactions []tx               `json:"transactions"`
}

type status struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockNumber uint64 `json:"latest_block_number"`
	Uncommitted       int    `json:"uncommitted"`
	Participants      int    `json:"participants"`
}

// =============================================================================

// wireErrors holds the message sent to clients for each rejection.
var wireErrors = []struct {
	err error
	msg string
}{
	{state.ErrStaleJob, "Stale job"},
	{state.ErrInvalidShare, "Invalid share"},
	{state.ErrMissingFields, "Missing fields"},
	{state.ErrInvalidNonce, "Invalid nonce"},
	{state.ErrInsufficientBalance, "Insufficient balance"},
	{state.ErrInvalidAmount, "Invalid amount"},
	{state.ErrInvalidTransfer, "Invalid transfer"},
	{state.ErrReservedAccount, "Reserved account"},
}

// wireError returns the client message for a ledger rejection. It reports
// false for errors that aren't rejections.
func wireError(err error) (string, bool) {
	for _, we := range wireErrors {
		if errors.Is(err, we.err) {
			return we.msg, true
		}
	}
	return "", false
}
