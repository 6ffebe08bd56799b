// Package difficulty maintains the per participant difficulty, maps a
// difficulty to a share threshold and retargets participants based on the
// time between their accepted shares.
package difficulty

import (
	"sync"
	"time"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/pow"
)

// Bounds of the threshold relative to the largest prefix value. The easiest
// difficulty accepts roughly 90% of hashes, the hardest roughly 20%.
const (
	lenientPercent = 90
	strictPercent  = 20
)

// Config represents the parameters of the controller.
type Config struct {
	Default         int
	Min             int
	Max             int
	TargetShareTime time.Duration
}

// Participant represents the difficulty state of a single account.
type Participant struct {
	Difficulty    int       `json:"difficulty"`
	LastShareTime time.Time `json:"last_share_time"`
}

// Adjustment describes the outcome of a retarget.
type Adjustment struct {
	Previous   int
	Difficulty int
	Elapsed    time.Duration
}

// Controller manages the participant table.
type Controller struct {
	mu           sync.Mutex
	cfg          Config
	participants map[database.AccountID]Participant
}

// New constructs a controller for use.
func New(cfg Config) *Controller {
	return &Controller{
		cfg:          cfg,
		participants: make(map[database.AccountID]Participant),
	}
}

// Difficulty returns the current difficulty for the account, creating the
// participant at the default difficulty if it's not known yet.
func (c *Controller) Difficulty(account database.AccountID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.participant(account).Difficulty
}

// Threshold returns the threshold for the difficulty using the configured
// bounds.
func (c *Controller) Threshold(difficulty int) uint64 {
	return Threshold(difficulty, c.cfg.Min, c.cfg.Max)
}

// Retarget applies the retargeting rule for an accepted share at the
// specified time. Shares faster than the target make the participant's work
// harder by one step, anything else makes it easier by one step. The first
// share of a participant is treated as arriving exactly on target.
func (c *Controller) Retarget(account database.AccountID, now time.Time) Adjustment {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.participant(account)

	elapsed := c.cfg.TargetShareTime
	if !p.LastShareTime.IsZero() {
		elapsed = now.Sub(p.LastShareTime)
	}

	next := p.Difficulty - 1
	if elapsed < c.cfg.TargetShareTime {
		next = p.Difficulty + 1
	}

	adj := Adjustment{
		Previous:   p.Difficulty,
		Difficulty: Clamp(next, c.cfg.Min, c.cfg.Max),
		Elapsed:    elapsed,
	}

	c.participants[account] = Participant{
		Difficulty:    adj.Difficulty,
		LastShareTime: now,
	}

	return adj
}

// Copy returns a copy of the participant table.
func (c *Controller) Copy() map[database.AccountID]Participant {
	c.mu.Lock()
	defer c.mu.Unlock()

	participants := make(map[database.AccountID]Participant, len(c.participants))
	for account, p := range c.participants {
		participants[account] = p
	}
	return participants
}

// participant returns the state for the account, creating it if needed.
// The caller must hold the lock.
func (c *Controller) participant(account database.AccountID) Participant {
	p, exists := c.participants[account]
	if !exists {
		p = Participant{Difficulty: Clamp(c.cfg.Default, c.cfg.Min, c.cfg.Max)}
		c.participants[account] = p
	}
	return p
}

// =============================================================================

// Clamp bounds the difficulty to [min, max].
func Clamp(difficulty int, min int, max int) int {
	switch {
	case difficulty < min:
		return min
	case difficulty > max:
		return max
	}
	return difficulty
}

// Threshold maps a difficulty to the value a hash prefix must be strictly
// below. The threshold is linearly interpolated from the lenient bound at
// min down to the strict bound at max, so a harder difficulty never has a
// higher threshold.
func Threshold(difficulty int, min int, max int) uint64 {
	lenient := pow.MaxPrefixValue / 100 * lenientPercent
	strict := pow.MaxPrefixValue / 100 * strictPercent

	if max <= min {
		return lenient
	}

	d := Clamp(difficulty, min, max)
	step := uint64(d - min)
	span := uint64(max - min)

	return lenient - (lenient-strict)*step/span
}
