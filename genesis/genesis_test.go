// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/genesis"
	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/randomness"
	"github.com/vechain/valpool/scores"
	"github.com/vechain/valpool/state"
)

func newPool(t *testing.T, gen *genesis.Genesis) (*pool.Pool, *scores.Table, *pool.Recorder) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg, err := gen.Config()
	require.NoError(t, err)
	table := scores.NewTable()
	require.NoError(t, gen.FillScores(table))

	rec := &pool.Recorder{}
	return pool.New(pez.PoolContractAddress, state.New(db), cfg, table, randomness.NewRecentHashes(0), rec), table, rec
}

func TestSampleRoundTrip(t *testing.T) {
	data, err := genesis.Sample().Marshal()
	require.NoError(t, err)

	gen, err := genesis.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, genesis.Sample(), gen)
}

func TestApplySample(t *testing.T) {
	gen := genesis.Sample()
	p, table, rec := newPool(t, gen)
	require.NoError(t, gen.Apply(p))

	size, err := p.PoolSize()
	require.NoError(t, err)
	assert.Equal(t, uint32(len(gen.Members)), size)
	assert.Equal(t, uint32(90), table.TrainingScoreOf(genesis.DevAccount(27)))

	ok, err := p.IsManager(genesis.DevAccount(0))
	require.NoError(t, err)
	assert.True(t, ok)

	length, err := p.EraLength()
	require.NoError(t, err)
	assert.Equal(t, uint32(20), length)

	set, err := p.CurrentValidatorSet()
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Equal(t, uint32(1), set.Era)
	assert.Len(t, set.Stake, 10)
	assert.Len(t, set.Parliamentary, 6)
	assert.Len(t, set.Merit, 5)

	last := rec.Events[len(rec.Events)-1]
	assert.Equal(t, "EraStarted", last.Name())
}

func TestConfig(t *testing.T) {
	seats, quorum, depth := uint32(7), uint32(2), 3
	gen := &genesis.Genesis{Params: genesis.Params{
		TotalSeats:        &seats,
		MinQuorum:         &quorum,
		HistoryDepth:      &depth,
		MinStakeFloor:     "2000",
		RandomnessContext: "ctx",
		LegacyBucketing:   true,
	}}
	cfg, err := gen.Config()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), cfg.TotalSeats)
	assert.Equal(t, uint32(2), cfg.MinQuorum)
	assert.Equal(t, 3, cfg.HistoryDepth)
	assert.Equal(t, uint256.NewInt(2000), cfg.MinStakeFloor)
	assert.Equal(t, []byte("ctx"), cfg.RandomnessContext)
	assert.True(t, cfg.LegacyBucketing)
	assert.Equal(t, pool.DefaultConfig().MaxPoolSize, cfg.MaxPoolSize)

	bad := uint32(0)
	_, err = (&genesis.Genesis{Params: genesis.Params{TotalSeats: &bad}}).Config()
	assert.Error(t, err)

	_, err = (&genesis.Genesis{Params: genesis.Params{MinStakeFloor: "lots"}}).Config()
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
params:
  cooldownEras: 1
eraLength: 0
managers:
  - "0x00000000000000000000000000000000000000aa"
scores:
  - account: "0x00000000000000000000000000000000000000bb"
    trust: "90"
    role: 1
members:
  - account: "0x00000000000000000000000000000000000000bb"
    category:
      kind: stake
      minStake: "1000"
      trustThreshold: "50"
`), 0o600))

	gen, err := genesis.Load(path)
	require.NoError(t, err)
	require.NotNil(t, gen.EraLength)
	assert.Equal(t, uint32(0), *gen.EraLength)
	require.Len(t, gen.Members, 1)
	assert.Equal(t, pez.MustParseAddress("0x00000000000000000000000000000000000000bb"), gen.Members[0].Account)

	p, _, _ := newPool(t, gen)
	require.NoError(t, gen.Apply(p))
	_, enabled, err := p.NextRotationBlock()
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = genesis.Parse([]byte("unknown: 1\n"))
	assert.Error(t, err)
	_, err = genesis.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyRejectsIneligible(t *testing.T) {
	gen := &genesis.Genesis{Members: []genesis.Member{{
		Account:  genesis.DevAccount(1),
		Category: genesis.Sample().Members[0].Category,
	}}}
	p, _, _ := newPool(t, gen)
	assert.ErrorIs(t, gen.Apply(p), pool.ErrInsufficientTrustScore)
}
