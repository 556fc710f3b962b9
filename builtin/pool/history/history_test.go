// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/state"
)

func TestEras_Append(t *testing.T) {
	var e Eras
	for era := uint32(1); era <= 7; era++ {
		e = e.Append(era, 5)
	}
	assert.Equal(t, Eras{3, 4, 5, 6, 7}, e)

	// append does not alias the receiver
	base := Eras{1, 2}
	_ = base.Append(3, 5)
	assert.Equal(t, Eras{1, 2}, base)
}

func TestEras_ServedWithin(t *testing.T) {
	e := Eras{5}
	assert.True(t, e.ServedWithin(6, 3))
	assert.True(t, e.ServedWithin(7, 3))
	assert.False(t, e.ServedWithin(8, 3))
	assert.True(t, e.ServedWithin(5, 3))
	assert.False(t, Eras{}.ServedWithin(1, 3))
	assert.False(t, e.ServedWithin(6, 0))
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	svc := New(solidity.NewContext(pez.BytesToAddress([]byte("pool")), state.New(db)), 2)

	acc := pez.BytesToAddress([]byte("validator"))
	eras, err := svc.Get(acc)
	require.NoError(t, err)
	assert.Empty(t, eras)

	require.NoError(t, svc.Record(acc, 1))
	require.NoError(t, svc.Record(acc, 4))
	require.NoError(t, svc.Record(acc, 9))
	eras, err = svc.Get(acc)
	require.NoError(t, err)
	assert.Equal(t, Eras{4, 9}, eras)

	svc.Delete(acc)
	eras, err = svc.Get(acc)
	require.NoError(t, err)
	assert.Empty(t, eras)
}
