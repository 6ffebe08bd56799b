// Package genesis maintains access to the genesis file which holds the
// consensus parameters of the ledger.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date               time.Time `json:"date"`
	TransPerBlock      int       `json:"trans_per_block"`      // The maximum number of transfers in a block, -1 for no limit.
	InitialReward      float64   `json:"initial_reward"`       // Reward for mining a block at height 0.
	HalvingInterval    uint64    `json:"halving_interval"`     // Number of blocks between reward halvings.
	MinReward          float64   `json:"min_reward"`           // The reward never drops below this value.
	DefaultDifficulty  int       `json:"default_difficulty"`   // Difficulty assigned to a new participant.
	MinDifficulty      int       `json:"min_difficulty"`       // Easiest difficulty a participant can have.
	MaxDifficulty      int       `json:"max_difficulty"`       // Hardest difficulty a participant can have.
	TargetShareSeconds float64   `json:"target_share_seconds"` // Desired time between a participant's shares.
}

// Default returns the consensus parameters used when no genesis file
// is provided.
func Default() Genesis {
	return Genesis{
		TransPerBlock:      -1,
		InitialReward:      4.0,
		HalvingInterval:    100,
		MinReward:          0.25,
		DefaultDifficulty:  2,
		MinDifficulty:      1,
		MaxDifficulty:      10,
		TargetShareSeconds: 10,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Values missing from the file
// keep their defaults.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	genesis := Default()
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, fmt.Errorf("genesis file %s: %w", path, err)
	}

	return genesis, nil
}

// Validate checks the parameters are consistent with each other.
func (g Genesis) Validate() error {
	switch {
	case g.MinDifficulty < 1:
		return errors.New("min_difficulty must be at least 1")

	case g.MaxDifficulty < g.MinDifficulty:
		return fmt.Errorf("max_difficulty %d is less than min_difficulty %d", g.MaxDifficulty, g.MinDifficulty)

	case g.DefaultDifficulty < g.MinDifficulty || g.DefaultDifficulty > g.MaxDifficulty:
		return fmt.Errorf("default_difficulty %d is outside [%d, %d]", g.DefaultDifficulty, g.MinDifficulty, g.MaxDifficulty)

	case !(g.InitialReward > 0):
		return errors.New("initial_reward must be positive")

	case g.MinReward < 0 || g.MinReward > g.InitialReward:
		return fmt.Errorf("min_reward %v must be within [0, initial_reward]", g.MinReward)

	case !(g.TargetShareSeconds > 0):
		return errors.New("target_share_seconds must be positive")

	case g.TransPerBlock < -1:
		return errors.New("trans_per_block must be -1 or more")
	}

	return nil
}

// TargetShareTime returns the desired interval between accepted shares.
func (g Genesis) TargetShareTime() time.Duration {
	return time.Duration(g.TargetShareSeconds * float64(time.Second))
}

// Reward returns the coinbase amount for a block at the specified height.
// The reward halves every HalvingInterval blocks and is floored at MinReward.
func (g Genesis) Reward(height uint64) float64 {
	if g.HalvingInterval == 0 {
		return math.Max(g.InitialReward, g.MinReward)
	}

	// Past this many halvings any float64 reward underflows to zero.
	const maxHalvings = 1100

	halvings := height / g.HalvingInterval
	if halvings > maxHalvings {
		return g.MinReward
	}

	reward := math.Ldexp(g.InitialReward, -int(halvings))
	return math.Max(reward, g.MinReward)
}
