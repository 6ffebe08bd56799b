package state_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cadocurrency/ledger/foundation/blockchain/database"
	"github.com/cadocurrency/ledger/foundation/blockchain/genesis"
	"github.com/cadocurrency/ledger/foundation/blockchain/pow"
	"github.com/cadocurrency/ledger/foundation/blockchain/state"
	"github.com/cadocurrency/ledger/foundation/blockchain/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func ifErrFailNow(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

// clock is a controllable time source for the ledger.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newLedger(t *testing.T) (*state.State, *memory.Memory, *clock) {
	t.Helper()

	store, err := memory.New()
	ifErrFailNow(t, err)

	clk := clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	st, err := state.New(state.Config{
		Storage: store,
		Genesis: genesis.Default(),
		Now:     clk.now,
	})
	ifErrFailNow(t, err)

	return st, store, &clk
}

// solve finds a nonce that satisfies the threshold for the seed.
func solve(t *testing.T, seed string, threshold uint64) uint64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sol, err := pow.Search(ctx, seed, threshold, 0, nil)
	ifErrFailNow(t, err)

	return sol.Nonce
}

// unsolve finds a nonce that does not satisfy the threshold for the seed.
func unsolve(seed string, threshold uint64) uint64 {
	var nonce uint64
	for pow.Valid(seed, nonce, threshold) {
		nonce++
	}
	return nonce
}

// mine requests a job for the account and submits a valid share for it.
func mine(t *testing.T, st *state.State, account database.AccountID) state.Share {
	t.Helper()

	job, err := st.RequestJob(account)
	ifErrFailNow(t, err)

	share, err := st.SubmitShare(account, job.Seed, solve(t, job.Seed, job.Threshold))
	ifErrFailNow(t, err)

	return share
}

// =============================================================================

func TestGenesis(t *testing.T) {
	t.Log("Given the need to start a ledger with no persisted chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling an empty storage.", testID)
		{
			st, _, _ := newLedger(t)

			chain := st.RetrieveChain()
			if len(chain) != 1 || !chain[0].IsGenesis() {
				t.Fatalf("\t%s\tTest %d:\tShould have a genesis only chain: %+v", failed, testID, chain)
			}
			t.Logf("\t%s\tTest %d:\tShould have a genesis only chain.", success, testID)

			if bals := st.QueryBalances(); len(bals) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould have no balances: %v", failed, testID, bals)
			}
			t.Logf("\t%s\tTest %d:\tShould have no balances.", success, testID)

			job, err := st.RequestJob("alice")
			ifErrFailNow(t, err)

			gen := genesis.Default()
			if job.Seed != database.GenesisHash || job.Height != 1 || job.Reward != gen.Reward(1) || job.Difficulty != gen.DefaultDifficulty {
				t.Fatalf("\t%s\tTest %d:\tShould get a job for height 1 on the genesis hash: %+v", failed, testID, job)
			}
			t.Logf("\t%s\tTest %d:\tShould get a job for height 1 on the genesis hash.", success, testID)
		}
	}
}

func TestSubmitShare(t *testing.T) {
	t.Log("Given the need to accept a valid share on a genesis chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen alice submits a solved share.", testID)
		{
			st, _, _ := newLedger(t)

			job, err := st.RequestJob("alice")
			ifErrFailNow(t, err)

			nonce := solve(t, "0", job.Threshold)

			share, err := st.SubmitShare("alice", "0", nonce)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould accept the share: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould accept the share.", success, testID)

			if share.Height != 1 {
				t.Errorf("\t%s\tTest %d:\tShould be at height 1, got %d.", failed, testID, share.Height)
			} else {
				t.Logf("\t%s\tTest %d:\tShould be at height 1.", success, testID)
			}

			if exp := genesis.Default().InitialReward; share.Balance != exp {
				t.Errorf("\t%s\tTest %d:\tShould have a balance of %v, got %v.", failed, testID, exp, share.Balance)
			} else {
				t.Logf("\t%s\tTest %d:\tShould have a balance equal to the initial reward.", success, testID)
			}

			if exp := pow.Hash("0", nonce); share.Hash != exp || st.RetrieveLatestBlock().Hash != exp {
				t.Errorf("\t%s\tTest %d:\tShould have the computed digest as the new tip: got %s, exp %s.", failed, testID, share.Hash, exp)
			} else {
				t.Logf("\t%s\tTest %d:\tShould have the computed digest as the new tip.", success, testID)
			}

			block := st.RetrieveLatestBlock()
			if len(block.Trans) != 1 || !block.Trans[0].IsCoinbase() || block.Trans[0].To != "alice" || block.PrevHash != "0" {
				t.Errorf("\t%s\tTest %d:\tShould have a block with only the coinbase: %+v", failed, testID, block)
			} else {
				t.Logf("\t%s\tTest %d:\tShould have a block with only the coinbase.", success, testID)
			}
		}
	}
}

func TestRejectedShares(t *testing.T) {
	t.Log("Given the need to reject stale and invalid shares.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a share is computed against an older tip.", testID)
		{
			st, _, _ := newLedger(t)

			job, err := st.RequestJob("alice")
			ifErrFailNow(t, err)

			mine(t, st, "bob")

			// The nonce solves the old seed but the tip has moved.
			nonce := solve(t, job.Seed, math.MaxUint32)
			if _, err := st.SubmitShare("alice", job.Seed, nonce); !errors.Is(err, state.ErrStaleJob) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a stale job: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a stale job.", success, testID)

			if _, err := st.SubmitShare("alice", "not-a-tip", 0); !errors.Is(err, state.ErrStaleJob) {
				t.Fatalf("\t%s\tTest %d:\tShould reject an unknown seed: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject an unknown seed.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a share doesn't satisfy the threshold.", testID)
		{
			st, _, _ := newLedger(t)

			job, err := st.RequestJob("alice")
			ifErrFailNow(t, err)

			nonce := unsolve(job.Seed, job.Threshold)
			if _, err := st.SubmitShare("alice", job.Seed, nonce); !errors.Is(err, state.ErrInvalidShare) {
				t.Fatalf("\t%s\tTest %d:\tShould reject an invalid share: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject an invalid share.", success, testID)

			if h := len(st.RetrieveChain()); h != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the chain unchanged, got %d blocks.", failed, testID, h)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the chain unchanged.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen required fields are missing.", testID)
		{
			st, _, _ := newLedger(t)

			if _, err := st.SubmitShare("", "0", 1); !errors.Is(err, state.ErrMissingFields) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a missing miner: %v", failed, testID, err)
			}
			if _, err := st.SubmitShare("alice", "", 1); !errors.Is(err, state.ErrMissingFields) {
				t.Fatalf("\t%s\tTest %d:\tShould reject a missing seed: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject missing fields.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a ledger account tries to mine.", testID)
		{
			st, _, _ := newLedger(t)

			for _, account := range []database.AccountID{database.NetworkID, database.GenesisID} {
				if _, err := st.RequestJob(account); !errors.Is(err, state.ErrReservedAccount) {
					t.Fatalf("\t%s\tTest %d:\tShould refuse a job for %s: %v", failed, testID, account, err)
				}

				nonce := solve(t, database.GenesisHash, math.MaxUint32)
				if _, err := st.SubmitShare(account, database.GenesisHash, nonce); !errors.Is(err, state.ErrReservedAccount) {
					t.Fatalf("\t%s\tTest %d:\tShould refuse a share from %s: %v", failed, testID, account, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould refuse jobs and shares for reserved accounts.", success, testID)

			if h := len(st.RetrieveChain()); h != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the chain unchanged, got %d blocks.", failed, testID, h)
			}
			if bals := st.QueryBalances(); len(bals) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould mint nothing: %v", failed, testID, bals)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the chain unchanged.", success, testID)
		}
	}
}

func TestRetarget(t *testing.T) {
	t.Log("Given the need to retarget a miner who shares faster than the target.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a miner submits two quick shares.", testID)
		{
			st, _, clk := newLedger(t)

			first := mine(t, st, "alice")
			if first.ShareTime != genesis.Default().TargetShareTime() {
				t.Errorf("\t%s\tTest %d:\tShould use the target as the first interval, got %v.", failed, testID, first.ShareTime)
			} else {
				t.Logf("\t%s\tTest %d:\tShould use the target as the first interval.", success, testID)
			}

			clk.advance(time.Second)

			second := mine(t, st, "alice")
			if second.Difficulty <= first.Difficulty {
				t.Fatalf("\t%s\tTest %d:\tShould make the work harder: first %d, second %d.", failed, testID, first.Difficulty, second.Difficulty)
			}
			t.Logf("\t%s\tTest %d:\tShould make the work harder: first %d, second %d.", success, testID, first.Difficulty, second.Difficulty)

			if second.ShareTime != time.Second {
				t.Errorf("\t%s\tTest %d:\tShould measure the share interval, got %v.", failed, testID, second.ShareTime)
			} else {
				t.Logf("\t%s\tTest %d:\tShould measure the share interval.", success, testID)
			}
		}

		testID++
		t.Logf("\tTest %d:\tWhen a miner keeps sharing quickly.", testID)
		{
			st, _, clk := newLedger(t)
			gen := genesis.Default()

			for i := 0; i < gen.MaxDifficulty+5; i++ {
				share := mine(t, st, "alice")
				if share.Difficulty < gen.MinDifficulty || share.Difficulty > gen.MaxDifficulty {
					t.Fatalf("\t%s\tTest %d:\tShould stay within bounds, got %d.", failed, testID, share.Difficulty)
				}
				clk.advance(time.Millisecond)
			}

			if d := st.RetrieveParticipants()["alice"].Difficulty; d != gen.MaxDifficulty {
				t.Fatalf("\t%s\tTest %d:\tShould clamp at the max difficulty, got %d.", failed, testID, d)
			}
			t.Logf("\t%s\tTest %d:\tShould clamp at the max difficulty.", success, testID)
		}
	}
}

func TestTransfers(t *testing.T) {
	t.Log("Given the need to queue and mine transfers.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen bob transfers without a balance.", testID)
		{
			st, _, _ := newLedger(t)

			if _, err := st.SubmitTransfer("bob", "alice", 5); !errors.Is(err, state.ErrInsufficientBalance) {
				t.Fatalf("\t%s\tTest %d:\tShould reject the transfer: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould reject the transfer.", success, testID)

			if n := len(st.RetrieveMempool()); n != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the pool unchanged, got %d.", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the pool unchanged.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen transfers are invalid.", testID)
		{
			st, _, _ := newLedger(t)
			mine(t, st, "alice")

			tt := []struct {
				from   database.AccountID
				to     database.AccountID
				amount float64
				err    error
			}{
				{"alice", "bob", 0, state.ErrInvalidAmount},
				{"alice", "bob", -1, state.ErrInvalidAmount},
				{"alice", "bob", math.NaN(), state.ErrInvalidAmount},
				{"", "bob", 1, state.ErrMissingFields},
				{"alice", "", 1, state.ErrMissingFields},
				{"network", "bob", 1, state.ErrInvalidTransfer},
				{"alice", "network", 1, state.ErrInvalidTransfer},
				{"alice", "genesis", 1, state.ErrInvalidTransfer},
				{"alice", "alice", 1, state.ErrInvalidTransfer},
			}

			for _, tst := range tt {
				if _, err := st.SubmitTransfer(tst.from, tst.to, tst.amount); !errors.Is(err, tst.err) {
					t.Fatalf("\t%s\tTest %d:\tShould reject %s->%s:%v with %v, got %v.", failed, testID, tst.from, tst.to, tst.amount, tst.err, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould reject invalid transfers.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the pool holds more than the sender can afford.", testID)
		{
			st, _, _ := newLedger(t)
			mine(t, st, "alice")

			// Both are accepted since each fits the confirmed balance of 4.
			_, err := st.SubmitTransfer("alice", "bob", 3)
			ifErrFailNow(t, err)
			_, err = st.SubmitTransfer("alice", "carl", 3)
			ifErrFailNow(t, err)
			t.Logf("\t%s\tTest %d:\tShould queue both transfers.", success, testID)

			share := mine(t, st, "dave")

			if n := len(share.Block.Trans); n != 2 || share.Block.Trans[1].To != "bob" {
				t.Fatalf("\t%s\tTest %d:\tShould include only the first transfer: %+v", failed, testID, share.Block.Trans)
			}
			t.Logf("\t%s\tTest %d:\tShould include only the first transfer.", success, testID)

			pool := st.RetrieveMempool()
			if len(pool) != 1 || pool[0] != (database.Tx{From: "alice", To: "carl", Amount: 3}) {
				t.Fatalf("\t%s\tTest %d:\tShould retain the unaffordable transfer unchanged: %+v", failed, testID, pool)
			}
			t.Logf("\t%s\tTest %d:\tShould retain the unaffordable transfer unchanged.", success, testID)

			bals := st.QueryBalances()
			if bals["alice"] != 1 || bals["bob"] != 3 || bals["dave"] != share.Reward {
				t.Fatalf("\t%s\tTest %d:\tShould have the right balances: %v", failed, testID, bals)
			}
			t.Logf("\t%s\tTest %d:\tShould have the right balances.", success, testID)

			// Alice mines and her own reward lets the retained transfer through.
			share = mine(t, st, "alice")
			if n := len(share.Block.Trans); n != 2 || share.Block.Trans[1].To != "carl" {
				t.Fatalf("\t%s\tTest %d:\tShould include the retained transfer: %+v", failed, testID, share.Block.Trans)
			}
			if n := len(st.RetrieveMempool()); n != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould empty the pool, got %d.", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould include the retained transfer once affordable.", success, testID)
		}
	}
}

func TestConservation(t *testing.T) {
	t.Log("Given the need to only create value through coinbase transactions.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mining blocks with transfers.", testID)
		{
			st, _, _ := newLedger(t)

			mine(t, st, "alice")
			mine(t, st, "bob")
			_, err := st.SubmitTransfer("alice", "carl", 1.5)
			ifErrFailNow(t, err)
			_, err = st.SubmitTransfer("bob", "alice", 2)
			ifErrFailNow(t, err)
			mine(t, st, "carl")

			var minted float64
			for _, block := range st.RetrieveChain() {
				for _, tx := range block.Trans {
					if tx.IsCoinbase() {
						minted += tx.Amount
					}
				}
			}

			var total float64
			for _, bal := range st.QueryBalances() {
				total += bal
			}

			if math.Abs(total-minted) > 1e-9 {
				t.Fatalf("\t%s\tTest %d:\tShould sum balances to the minted value: total %v, minted %v.", failed, testID, total, minted)
			}
			t.Logf("\t%s\tTest %d:\tShould sum balances to the minted value.", success, testID)
		}
	}
}

func TestTransPerBlock(t *testing.T) {
	t.Log("Given the need to bound the number of transfers in a block.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen more affordable transfers are pending than fit.", testID)
		{
			store, err := memory.New()
			ifErrFailNow(t, err)

			gen := genesis.Default()
			gen.TransPerBlock = 2

			st, err := state.New(state.Config{Storage: store, Genesis: gen})
			ifErrFailNow(t, err)

			mine(t, st, "alice")

			for _, to := range []database.AccountID{"bob", "carl", "dave"} {
				_, err := st.SubmitTransfer("alice", to, 1)
				ifErrFailNow(t, err)
			}

			share := mine(t, st, "erin")

			if n := len(share.Block.Trans); n != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould carry the coinbase and two transfers, got %d.", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould carry the coinbase and two transfers.", success, testID)

			pending := st.RetrieveMempool()
			if len(pending) != 1 || pending[0].To != "dave" {
				t.Fatalf("\t%s\tTest %d:\tShould keep the last transfer pending: %v", failed, testID, pending)
			}
			t.Logf("\t%s\tTest %d:\tShould keep the last transfer pending.", success, testID)
		}
	}
}

func TestEvents(t *testing.T) {
	t.Log("Given the need to report ledger activity as events.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a block is mined and a transfer is queued.", testID)
		{
			store, err := memory.New()
			ifErrFailNow(t, err)

			var evts []string
			st, err := state.New(state.Config{
				Storage: store,
				Genesis: genesis.Default(),
				EvHandler: func(v string, args ...any) {
					evts = append(evts, fmt.Sprintf(v, args...))
				},
			})
			ifErrFailNow(t, err)

			mine(t, st, "alice")
			_, err = st.SubmitTransfer("alice", "bob", 1)
			ifErrFailNow(t, err)

			for _, prefix := range []string{"state: SubmitShare: ACCEPTED: blk[1]: miner[alice]", "state: SubmitTransfer: QUEUED"} {
				var found bool
				for _, evt := range evts {
					if strings.HasPrefix(evt, prefix) {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("\t%s\tTest %d:\tShould report %q in: %v", failed, testID, prefix, evts)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould report the accepted share and the queued transfer.", success, testID)

			for _, evt := range evts {
				if !strings.HasPrefix(evt, "state: ") && !strings.HasPrefix(evt, "database: ") {
					t.Fatalf("\t%s\tTest %d:\tShould name the reporting package: %q", failed, testID, evt)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould name the reporting package on every event.", success, testID)
		}
	}
}

func TestConcurrency(t *testing.T) {
	t.Log("Given the need to run share submissions as one unit against all other work.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen many miners race valid shares on the same seed.", testID)
		{
			const miners = 16
			const amount = 0.25

			st, _, _ := newLedger(t)
			first := mine(t, st, "alice")

			// Every miner solves the same tip before the race starts.
			seed := st.RetrieveLatestBlock().Hash
			accounts := make([]database.AccountID, miners)
			nonces := make([]uint64, miners)
			for i := range accounts {
				accounts[i] = database.AccountID(fmt.Sprintf("miner%02d", i))

				job, err := st.RequestJob(accounts[i])
				ifErrFailNow(t, err)

				nonces[i] = solve(t, seed, job.Threshold)
			}

			var (
				mu       sync.Mutex
				accepted []state.Share
				stale    int
				failures []error
			)

			fail := func(err error) {
				mu.Lock()
				defer mu.Unlock()
				failures = append(failures, err)
			}

			start := make(chan struct{})
			var wg sync.WaitGroup
			wg.Add(miners)

			for i := range accounts {
				go func(i int) {
					defer wg.Done()
					<-start

					if _, err := st.SubmitTransfer("alice", "bob", amount); err != nil {
						fail(fmt.Errorf("transfer: %w", err))
					}

					var total float64
					for _, bal := range st.QueryBalances() {
						total += bal
					}
					if total != first.Reward && total != first.Reward+st.RetrieveGenesis().Reward(2) {
						fail(fmt.Errorf("balances sum to %v", total))
					}

					share, err := st.SubmitShare(accounts[i], seed, nonces[i])

					mu.Lock()
					defer mu.Unlock()

					switch {
					case err == nil:
						accepted = append(accepted, share)
					case errors.Is(err, state.ErrStaleJob):
						stale++
					default:
						failures = append(failures, fmt.Errorf("share: %w", err))
					}
				}(i)
			}

			close(start)
			wg.Wait()

			if len(failures) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould not fail any operation: %v", failed, testID, failures)
			}
			t.Logf("\t%s\tTest %d:\tShould not fail any operation.", success, testID)

			if len(accepted) != 1 || stale != miners-1 {
				t.Fatalf("\t%s\tTest %d:\tShould accept exactly one share, got accepted[%d] stale[%d].", failed, testID, len(accepted), stale)
			}
			t.Logf("\t%s\tTest %d:\tShould accept exactly one share and report the rest stale.", success, testID)

			latest := st.RetrieveLatestBlock()
			if latest.Index != 2 || latest.Hash != accepted[0].Hash || latest.PrevHash != seed {
				t.Fatalf("\t%s\tTest %d:\tShould grow the chain by one block: %+v", failed, testID, latest)
			}
			t.Logf("\t%s\tTest %d:\tShould grow the chain by one block.", success, testID)

			mined := len(latest.Trans) - 1
			if pending := len(st.RetrieveMempool()); mined+pending != miners {
				t.Fatalf("\t%s\tTest %d:\tShould keep every transfer in the block or the pool, got %d+%d.", failed, testID, mined, pending)
			}
			t.Logf("\t%s\tTest %d:\tShould keep every transfer in the block or the pool.", success, testID)

			bals := st.QueryBalances()
			if bals["alice"] != first.Reward-float64(mined)*amount || bals["bob"] != float64(mined)*amount {
				t.Fatalf("\t%s\tTest %d:\tShould apply only the mined transfers: %v", failed, testID, bals)
			}
			t.Logf("\t%s\tTest %d:\tShould apply only the mined transfers.", success, testID)
		}
	}
}

func TestPersistenceFailure(t *testing.T) {
	t.Log("Given the need to never accept a block that isn't stored.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen storage fails during append.", testID)
		{
			st, store, _ := newLedger(t)
			mine(t, st, "alice")

			_, err := st.SubmitTransfer("alice", "bob", 1)
			ifErrFailNow(t, err)

			job, err := st.RequestJob("bob")
			ifErrFailNow(t, err)

			store.FailReplace(errors.New("disk full"))

			_, err = st.SubmitShare("bob", job.Seed, solve(t, job.Seed, job.Threshold))
			if err == nil || errors.Is(err, state.ErrInvalidShare) || errors.Is(err, state.ErrStaleJob) {
				t.Fatalf("\t%s\tTest %d:\tShould fail the submission: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould fail the submission: %v", success, testID, err)

			if st.RetrieveLatestBlock().Hash != job.Seed {
				t.Fatalf("\t%s\tTest %d:\tShould keep the old tip.", failed, testID)
			}
			if n := len(st.RetrieveMempool()); n != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould keep the pool, got %d.", failed, testID, n)
			}
			after := st.RetrieveParticipants()["bob"]
			if after.Difficulty != genesis.Default().DefaultDifficulty || !after.LastShareTime.IsZero() {
				t.Fatalf("\t%s\tTest %d:\tShould not retarget: %+v", failed, testID, after)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the ledger unchanged.", success, testID)
		}
	}
}

func TestParseNonce(t *testing.T) {
	t.Log("Given the need to parse nonces sent by miners.")
	{
		tt := []struct {
			in  string
			exp uint64
			err bool
		}{
			{"0", 0, false},
			{"12345", 12345, false},
			{" 42 ", 42, false},
			{"", 0, true},
			{"-1", 0, true},
			{"1.5", 0, true},
			{"abc", 0, true},
			{"18446744073709551616", 0, true},
		}

		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen parsing %q.", testID, tst.in)
			{
				nonce, err := state.ParseNonce(tst.in)
				switch {
				case tst.err && !errors.Is(err, state.ErrInvalidNonce):
					t.Fatalf("\t%s\tTest %d:\tShould reject the nonce: %v", failed, testID, err)
				case !tst.err && (err != nil || nonce != tst.exp):
					t.Fatalf("\t%s\tTest %d:\tShould parse the nonce: got %d, %v", failed, testID, nonce, err)
				}
				t.Logf("\t%s\tTest %d:\tShould handle the nonce.", success, testID)
			}
		}
	}
}
