// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/scores"
	"github.com/vechain/valpool/state"
)

// fixedBeacon always returns the same seed.
type fixedBeacon struct {
	seed pez.Bytes32
}

func (b *fixedBeacon) Random(subject []byte) (pez.Bytes32, uint32) {
	return pez.Blake2b(subject, b.seed[:]), 0
}

type PoolTest struct {
	*Pool
	t      *testing.T
	table  *scores.Table
	events *Recorder
	beacon *fixedBeacon
}

func newTest(t *testing.T, opts ...func(*Config)) *PoolTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	table := scores.NewTable()
	rec := &Recorder{}
	beacon := &fixedBeacon{seed: pez.Blake2b([]byte("test"))}

	return &PoolTest{
		Pool:   New(pez.PoolContractAddress, state.New(db), cfg, table, beacon, rec),
		t:      t,
		table:  table,
		events: rec,
		beacon: beacon,
	}
}

func account(i int) pez.Address {
	return pez.BytesToAddress([]byte{0xac, byte(i >> 8), byte(i)})
}

func stakeCategory() membership.StakeValidator {
	return membership.StakeValidator{MinStake: uint256.NewInt(1000), TrustThreshold: uint256.NewInt(50)}
}

func meritCategory() membership.MeritValidator {
	return membership.MeritValidator{SpecialRoles: []uint32{1}, CommunityThreshold: 500}
}

// Eligible gives account the scores every category requires.
func (ts *PoolTest) Eligible(acc pez.Address) *PoolTest {
	ts.table.Set(acc, scores.Scores{Trust: uint256.NewInt(100), Role: 1, Referral: 1000})
	return ts
}

func (ts *PoolTest) JoinAs(acc pez.Address, category membership.Category) *PoolTest {
	ts.Eligible(acc)
	require.NoError(ts.t, ts.Join(Signed{acc}, category), "join %v", acc)
	return ts
}

// Fill enrolls accounts [from, from+n) in the given category.
func (ts *PoolTest) Fill(from, n int, category membership.Category) *PoolTest {
	for i := from; i < from+n; i++ {
		ts.JoinAs(account(i), category)
	}
	return ts
}

func (ts *PoolTest) SetReputation(acc pez.Address, produced, missed uint32) *PoolTest {
	require.NoError(ts.t, ts.UpdatePerformance(Root{}, acc, produced, missed, 0))
	return ts
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	pool *PoolTest

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(pool *PoolTest) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), pool: pool}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) Join(acc pez.Address, category membership.Category) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.pool.Eligible(acc)
		if err := st.pool.Join(Signed{acc}, category); err != nil {
			t.Fatalf("failed to join %s: %v", acc, err)
		}
		t.Logf("joined %s as %s", acc, category.Kind())
	})
}

func (st *TestSequence) Leave(acc pez.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.Leave(Signed{acc}); err != nil {
			t.Fatalf("failed to leave %s: %v", acc, err)
		}
		t.Logf("left %s", acc)
	})
}

func (st *TestSequence) Rotate(block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		set, err := st.pool.ForceRotate(Root{}, block)
		if err != nil {
			t.Fatalf("failed to rotate at block %d: %v", block, err)
		}
		t.Logf("era %d started with %d validators", set.Era, set.TotalCount())
	})
}

func (st *TestSequence) Initialize(block uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.pool.OnInitialize(block); err != nil {
			t.Fatalf("on initialize at block %d: %v", block, err)
		}
	})
}

func (st *TestSequence) AssertEra(era uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		got, err := st.pool.CurrentEra()
		require.NoError(t, err)
		require.Equal(t, era, got, "current era")
	})
}

func (st *TestSequence) AssertPoolSize(size uint32) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		got, err := st.pool.PoolSize()
		require.NoError(t, err)
		require.Equal(t, size, got, "pool size")
	})
}

func (st *TestSequence) Run(t *testing.T) {
	for _, f := range st.funcs {
		f(t)
	}
}
