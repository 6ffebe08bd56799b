// Package client provides the calls the wallet makes against a node.
package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/pow"
	"github.com/go-resty/resty/v2"
)

// ErrRejected is returned when the node refuses a share or a transfer.
var ErrRejected = errors.New("rejected by node")

// Job is the work handed out by the node.
type Job struct {
	Seed       string  `json:"seed"`
	Difficulty int     `json:"difficulty"`
	Threshold  uint64  `json:"threshold"`
	Height     uint64  `json:"height"`
	Reward     float64 `json:"reward"`
	PrefixLen  int     `json:"prefix_len"`
}

// Share is the outcome of a submitted share.
type Share struct {
	Accepted   bool    `json:"accepted"`
	Error      string  `json:"error"`
	Hash       string  `json:"hash"`
	Height     uint64  `json:"height"`
	Reward     float64 `json:"reward"`
	Balance    float64 `json:"balance"`
	Difficulty int     `json:"difficulty"`
	ShareTime  float64 `json:"share_time"`
}

// Balance is the confirmed balance of a single account.
type Balance struct {
	Account string  `json:"account"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []Balance `json:"balances"`
}

type transfer struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// =============================================================================

// Client talks to the public API of a node.
type Client struct {
	rc *resty.Client
}

// New constructs a client for the node at the url. An empty token sends
// no authorization header.
func New(url string, token string) *Client {
	rc := resty.New().SetBaseURL(url)
	if token != "" {
		rc.SetAuthToken(token)
	}

	return &Client{rc: rc}
}

// RequestJob asks the node for work on the next block.
func (c *Client) RequestJob(ctx context.Context, accountID database.AccountID) (Job, error) {
	var job Job
	var er errorResponse

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(map[string]string{"miner_id": string(accountID)}).
		SetResult(&job).
		SetError(&er).
		Post("/v1/mining/job")
	if err != nil {
		return Job{}, err
	}

	if resp.IsError() {
		return Job{}, fmt.Errorf("request job: %d: %s", resp.StatusCode(), er.Error)
	}

	return job, nil
}

// SubmitShare sends a solution to the node. A share the node refuses is
// returned along with ErrRejected.
func (c *Client) SubmitShare(ctx context.Context, accountID database.AccountID, seed string, nonce uint64) (Share, error) {
	var share Share

	body := map[string]string{
		"miner_id": string(accountID),
		"seed":     seed,
		"nonce":    strconv.FormatUint(nonce, 10),
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&share).
		SetError(&share).
		Post("/v1/mining/submit")
	if err != nil {
		return Share{}, err
	}

	if !share.Accepted {
		return share, fmt.Errorf("%w: %d: %s", ErrRejected, resp.StatusCode(), share.Error)
	}

	return share, nil
}

// Mine requests a job, searches for a nonce locally and submits it. A stale
// job is retried with fresh work until the context is done.
func (c *Client) Mine(ctx context.Context, accountID database.AccountID, ev func(v string, args ...any)) (Share, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	for {
		job, err := c.RequestJob(ctx, accountID)
		if err != nil {
			return Share{}, err
		}

		ev("mine: job: height[%d]: difficulty[%d]: threshold[%d]", job.Height, job.Difficulty, job.Threshold)

		sol, err := pow.Search(ctx, job.Seed, job.Threshold, 0, ev)
		if err != nil {
			return Share{}, err
		}

		share, err := c.SubmitShare(ctx, accountID, job.Seed, sol.Nonce)
		if err != nil {
			if errors.Is(err, ErrRejected) && share.Error == "Stale job" {
				ev("mine: stale job at height[%d], requesting new work", job.Height)
				continue
			}
			return Share{}, err
		}

		return share, nil
	}
}

// Balance returns the confirmed balance of the account.
func (c *Client) Balance(ctx context.Context, accountID database.AccountID) (Balance, error) {
	var bals balances
	var er errorResponse

	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&bals).
		SetError(&er).
		Get("/v1/balances/list/" + string(accountID))
	if err != nil {
		return Balance{}, err
	}

	if resp.IsError() {
		return Balance{}, fmt.Errorf("balance: %d: %s", resp.StatusCode(), er.Error)
	}

	if len(bals.Balances) == 0 {
		return Balance{Account: string(accountID)}, nil
	}

	return bals.Balances[0], nil
}

// Send queues a transfer on the node.
func (c *Client) Send(ctx context.Context, from database.AccountID, to database.AccountID, amount float64) (string, error) {
	var tr transfer

	body := struct {
		From   string  `json:"from"`
		To     string  `json:"to"`
		Amount float64 `json:"amount"`
	}{
		From:   string(from),
		To:     string(to),
		Amount: amount,
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&tr).
		SetError(&tr).
		Post("/v1/tx/submit")
	if err != nil {
		return "", err
	}

	if !tr.Success {
		msg := tr.Error
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	return tr.Status, nil
}

// Chain returns the full chain held by the node.
func (c *Client) Chain(ctx context.Context) ([]database.Block, error) {
	var blocks []database.Block

	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&blocks).
		Get("/v1/blocks/list")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("chain: %s", resp.Status())
	}

	return blocks, nil
}
