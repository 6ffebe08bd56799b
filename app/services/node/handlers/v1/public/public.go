// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/cadocurrency/ledger/business/sys/metrics"
	"github.com/cadocurrency/ledger/business/web/errs"
	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/state"
	"github.com/cadocurrency/ledger/foundation/events"
	"github.com/cadocurrency/ledger/foundation/nameservice"
	"github.com/cadocurrency/ledger/foundation/validate"
	"github.com/cadocurrency/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Banner is the body served on the root of the node.
const Banner = "Cadocurrency mining server is running!"

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Home returns the banner of the node.
func (h Handlers) Home(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.RespondText(ctx, w, Banner, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// RequestJob returns the work for the next block for the miner.
func (h Handlers) RequestJob(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var req jobRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(errors.New("Missing fields"), http.StatusBadRequest)
	}

	if err := validate.Check(req); err != nil {
		return errs.NewTrusted(errors.New("Missing fields"), http.StatusBadRequest)
	}

	j, err := h.State.RequestJob(database.AccountID(req.MinerID))
	if err != nil {
		if msg, ok := wireError(err); ok {
			return errs.NewTrusted(errors.New(msg), http.StatusBadRequest)
		}
		return err
	}

	return web.Respond(ctx, w, toJob(j), http.StatusOK)
}

// SubmitShare validates a share and mints a block when it solves the job.
// Stale and invalid shares are normal outcomes for a miner and are reported
// with a 200.
func (h Handlers) SubmitShare(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	metrics.AddShares(ctx)

	reject := func(msg string, statusCode int) error {
		return web.Respond(ctx, w, shareRejected{Accepted: false, Error: msg}, statusCode)
	}

	var req shareRequest
	if err := web.Decode(r, &req); err != nil {
		return reject("Missing fields", http.StatusBadRequest)
	}

	if err := validate.Check(req); err != nil {
		return reject("Missing fields", http.StatusBadRequest)
	}

	nonce, err := req.nonce()
	if err != nil {
		msg, _ := wireError(err)
		return reject(msg, http.StatusBadRequest)
	}

	share, err := h.State.SubmitShare(database.AccountID(req.MinerID), req.Seed, nonce)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrStaleJob), errors.Is(err, state.ErrInvalidShare):
			msg, _ := wireError(err)
			return reject(msg, http.StatusOK)

		case errors.Is(err, state.ErrMissingFields), errors.Is(err, state.ErrReservedAccount):
			msg, _ := wireError(err)
			return reject(msg, http.StatusBadRequest)
		}

		return fmt.Errorf("submit share: %w", err)
	}

	metrics.AddBlocks(ctx)

	return web.Respond(ctx, w, toShareAccepted(share), http.StatusOK)
}

// SubmitTransfer adds a transfer to the mempool.
func (h Handlers) SubmitTransfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	reject := func(msg string) error {
		return web.Respond(ctx, w, transferRejected{Success: false, Error: msg}, http.StatusBadRequest)
	}

	var req transferRequest
	if err := web.Decode(r, &req); err != nil {
		return reject("Missing fields")
	}

	if err := validate.Check(req); err != nil {
		return reject("Missing fields")
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "from", req.From, "to", req.To, "amount", req.Amount)

	if _, err := h.State.SubmitTransfer(database.AccountID(req.From), database.AccountID(req.To), req.Amount); err != nil {
		if msg, ok := wireError(err); ok {
			return reject(msg)
		}
		return fmt.Errorf("submit transfer: %w", err)
	}

	resp := transferAccepted{
		Success: true,
		Status:  "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

// Genesis returns the consensus parameters.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// Status returns the current state of the chain.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest := h.State.RetrieveLatestBlock()

	resp := status{
		LatestBlockHash:   latest.Hash,
		LatestBlockNumber: latest.Index,
		Uncommitted:       h.State.QueryMempoolLength(),
		Participants:      len(h.State.RetrieveParticipants()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the confirmed balances for every account or for the
// specified account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var bals map[database.AccountID]float64

	switch account := web.Param(r, "account"); account {
	case "":
		bals = h.State.QueryBalances()

	default:
		accountID, err := database.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		bals = map[database.AccountID]float64{
			accountID: h.State.QueryBalance(accountID),
		}
	}

	list := make([]balance, 0, len(bals))
	for accountID, value := range bals {
		list = append(list, balance{
			Account: accountID,
			Name:    h.NS.Lookup(accountID),
			Balance: value,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Account < list[j].Account })

	resp := balances{
		LatestBlock: h.State.RetrieveLatestBlock().Hash,
		Uncommitted: h.State.QueryMempoolLength(),
		Balances:    list,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// MinerBalance returns the balance of a miner in the shape older mining
// clients expect.
func (h Handlers) MinerBalance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "miner"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := legacyBalance{
		Miner:   accountID,
		Balance: h.State.QueryBalance(accountID),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in submission order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.toTxs(h.State.RetrieveMempool()), http.StatusOK)
}

// Chain returns the full chain as it is persisted.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// BlocksByAccount returns the blocks where the account mined, sent or
// received value.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	dbBlocks := h.State.QueryBlocksByAccount(accountID)
	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, h.toBlocks(dbBlocks), http.StatusOK)
}

// BlocksByNumber returns the blocks within the specified range. The word
// latest can be used for either bound.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := parseBlockNumber(web.Param(r, "from"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	to, err := parseBlockNumber(web.Param(r, "to"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if from > to {
		return errs.NewTrusted(errors.New("from greater than to"), http.StatusBadRequest)
	}

	dbBlocks := h.State.QueryBlocksByNumber(from, to)
	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, h.toBlocks(dbBlocks), http.StatusOK)
}

// =============================================================================

func (h Handlers) toTxs(trans []database.Tx) []tx {
	out := make([]tx, len(trans))
	for i, tran := range trans {
		out[i] = tx{
			From:     tran.From,
			FromName: h.NS.Lookup(tran.From),
			To:       tran.To,
			ToName:   h.NS.Lookup(tran.To),
			Amount:   tran.Amount,
		}
	}
	return out
}

func (h Handlers) toBlocks(dbBlocks []database.Block) []block {
	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = block{
			Index:        blk.Index,
			TimeStamp:    blk.TimeStamp,
			PrevHash:     blk.PrevHash,
			Hash:         blk.Hash,
			Nonce:        blk.Nonce,
			Miner:        blk.Miner,
			MinerName:    h.NS.Lookup(blk.Miner),
			Transactions: h.toTxs(blk.Trans),
		}
	}
	return blocks
}

func parseBlockNumber(s string) (uint64, error) {
	if s == "latest" {
		return state.QueryLatest, nil
	}

	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q", s)
	}
	return num, nil
}
