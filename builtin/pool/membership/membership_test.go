// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package membership

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/state"
)

func newTestService(t *testing.T) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(pez.BytesToAddress([]byte("pool")), state.New(db)))
}

func account(i byte) pez.Address {
	return pez.BytesToAddress([]byte{0xaa, i})
}

func TestService_AddGetRemove(t *testing.T) {
	svc := newTestService(t)

	stake := StakeValidator{MinStake: uint256.NewInt(5000), TrustThreshold: uint256.NewInt(10)}
	merit := MeritValidator{SpecialRoles: []uint32{3, 7}, CommunityThreshold: 500}

	require.NoError(t, svc.Add(account(1), stake, 0))
	require.NoError(t, svc.Add(account(2), ParliamentaryValidator{}, 1))
	require.NoError(t, svc.Add(account(3), merit, 2))

	m, err := svc.Get(account(1))
	require.NoError(t, err)
	assert.Equal(t, stake, m.Category)
	assert.Equal(t, uint32(0), m.JoinedEra)

	m, err = svc.Get(account(2))
	require.NoError(t, err)
	assert.Equal(t, ParliamentaryValidator{}, m.Category)

	m, err = svc.Get(account(3))
	require.NoError(t, err)
	assert.Equal(t, merit, m.Category)
	assert.Equal(t, uint32(2), m.JoinedEra)

	size, err := svc.Size()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), size)

	require.NoError(t, svc.Remove(account(2)))
	m, err = svc.Get(account(2))
	require.NoError(t, err)
	assert.Nil(t, m)

	members, err := svc.List()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, account(1), members[0].Account)
	assert.Equal(t, account(3), members[1].Account)

	size, err = svc.Size()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), size)
}

func TestService_SetCategory(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Add(account(1), ParliamentaryValidator{}, 4))
	require.NoError(t, svc.SetCategory(account(1), MeritValidator{CommunityThreshold: 1}))

	m, err := svc.Get(account(1))
	require.NoError(t, err)
	assert.Equal(t, KindMerit, m.Category.Kind())
	assert.Equal(t, uint32(4), m.JoinedEra)

	assert.Error(t, svc.SetCategory(account(9), ParliamentaryValidator{}))
}

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Category
	}{
		{"stake", `{"kind":"stake","minStake":"340282366920938463463374607431768211455","trustThreshold":"70"}`,
			StakeValidator{
				MinStake:       uint256.MustFromDecimal("340282366920938463463374607431768211455"),
				TrustThreshold: uint256.NewInt(70),
			}},
		{"parliamentary", `{"kind":"Parliamentary"}`, ParliamentaryValidator{}},
		{"merit", `{"kind":"merit","specialRoles":[1,2],"communityThreshold":500}`,
			MeritValidator{SpecialRoles: []uint32{1, 2}, CommunityThreshold: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnmarshalCategory([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			data, err := MarshalCategory(got)
			require.NoError(t, err)
			again, err := UnmarshalCategory(data)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	_, err := UnmarshalCategory([]byte(`{"kind":"council"}`))
	assert.Error(t, err)
	_, err = UnmarshalCategory([]byte(`{"kind":"stake","minStake":"-1"}`))
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "stake", KindStake.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
