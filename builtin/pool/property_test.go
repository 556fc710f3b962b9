// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/builtin/pool/reverts"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/randomness"
)

type step struct {
	Op       uint8
	Account  uint8
	Kind     uint8
	Produced uint8
	Missed   uint8
}

func (s step) category() membership.Category {
	switch s.Kind % 3 {
	case 0:
		return stakeCategory()
	case 1:
		return membership.ParliamentaryValidator{}
	default:
		return meritCategory()
	}
}

func TestPoolInvariants(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		t.Run(spew.Sprint("seed-", seed), func(t *testing.T) {
			ts := newTest(t)
			beacon := randomness.NewRecentHashes(0)
			ts.Pool.beacon = beacon
			require.NoError(t, ts.SetEraLength(Root{}, 5))

			f := fuzz.NewWithSeed(seed).NilChance(0)
			served := make(map[pez.Address][]uint32)

			for block := uint32(1); block <= 400; block++ {
				beacon.Feed(block, pez.Blake2b([]byte{byte(seed)}, []byte{byte(block), byte(block >> 8)}))

				var s step
				f.Fuzz(&s)
				acc := account(int(s.Account % 48))
				ts.Eligible(acc)

				eraBefore, err := ts.CurrentEra()
				require.NoError(t, err)

				switch s.Op % 6 {
				case 0, 1:
					err = ts.Join(Signed{acc}, s.category())
				case 2:
					err = ts.Leave(Signed{acc})
					if err == nil {
						delete(served, acc)
					}
				case 3:
					err = ts.UpdateCategory(Signed{acc}, s.category())
				case 4:
					err = ts.UpdatePerformance(Root{}, acc, uint32(s.Produced%20), uint32(s.Missed%20), uint32(s.Produced))
				case 5:
					_, err = ts.ForceRotate(Root{}, block)
				}
				if err != nil {
					require.True(t, reverts.IsRevertErr(err), "unexpected error: %v", err)
				}
				require.NoError(t, ts.OnInitialize(block))

				eraAfter, err := ts.CurrentEra()
				require.NoError(t, err)
				require.LessOrEqual(t, eraAfter-eraBefore, uint32(2))

				checkInvariants(t, ts, served, eraBefore, eraAfter)
			}
		})
	}
}

func checkInvariants(t *testing.T, ts *PoolTest, served map[pez.Address][]uint32, eraBefore, eraAfter uint32) {
	members, err := ts.Members()
	require.NoError(t, err)
	size, err := ts.PoolSize()
	require.NoError(t, err)
	require.Equal(t, int(size), len(members))
	require.LessOrEqual(t, size, ts.cfg.MaxPoolSize)

	for _, m := range members {
		rec, err := ts.Performance(m.Account)
		require.NoError(t, err)
		require.NotNil(t, rec, "member %v without performance record", m.Account)
		require.LessOrEqual(t, rec.ReputationScore, uint8(100))
	}

	set, err := ts.CurrentValidatorSet()
	require.NoError(t, err)
	if set == nil {
		return
	}
	require.GreaterOrEqual(t, set.TotalCount(), int(ts.cfg.MinQuorum), spew.Sdump(set))

	if eraAfter == eraBefore {
		return
	}
	// a new set was produced in this block; the last one is the current set
	for _, acc := range set.Flatten() {
		for _, e := range served[acc] {
			if e < set.Era {
				require.GreaterOrEqual(t, set.Era-e, ts.cfg.CooldownEras,
					"%v selected in era %d and %d", acc, e, set.Era)
			}
		}
		served[acc] = append(served[acc], set.Era)
	}
}
