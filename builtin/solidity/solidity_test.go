// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/valpool/lvldb"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/state"
)

type TestStruct struct {
	Field1 uint32
	Field2 string
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(pez.BytesToAddress([]byte("pool")), state.New(db))
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[pez.Address, *TestStruct](ctx, pez.BytesToBytes32([]byte("test-mapping")))
	key := pez.BytesToAddress([]byte("key"))

	value, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, &TestStruct{}, value)

	ok, err := m.Exists(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(key, &TestStruct{Field1: 7, Field2: "seven"}))
	value, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, &TestStruct{Field1: 7, Field2: "seven"}, value)

	ok, err = m.Exists(key)
	require.NoError(t, err)
	assert.True(t, ok)

	m.Delete(key)
	ok, err = m.Exists(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMapping_DistinctBases(t *testing.T) {
	ctx := newTestContext(t)
	m1 := NewMapping[pez.Address, uint32](ctx, pez.BytesToBytes32([]byte("m1")))
	m2 := NewMapping[pez.Address, uint32](ctx, pez.BytesToBytes32([]byte("m2")))
	key := pez.BytesToAddress([]byte("key"))

	require.NoError(t, m1.Set(key, 1))
	v, err := m2.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)
}

func TestMapping_Revert(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[pez.Address, uint32](ctx, pez.BytesToBytes32([]byte("m")))
	key := pez.BytesToAddress([]byte("key"))

	require.NoError(t, m.Set(key, 1))
	cp := ctx.State().NewCheckpoint()
	require.NoError(t, m.Set(key, 2))
	ctx.State().RevertTo(cp)

	v, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
}

func TestUint32(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint32(ctx, pez.BytesToBytes32([]byte("counter")))

	v, err := u.Get()
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, u.Add(5))
	require.NoError(t, u.Sub(2))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v)

	assert.Error(t, u.Sub(4))
	u.Set(math.MaxUint32)
	assert.Error(t, u.Add(1))
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, pez.BytesToBytes32([]byte("head")))

	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	addr := pez.BytesToAddress([]byte("validator"))
	a.Set(&addr)
	got, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	a.Set(nil)
	got, err = a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestConfigVariable(t *testing.T) {
	ctx := newTestContext(t)

	cv := NewConfigVariable("era-length", 600)
	cv.Override(ctx)
	assert.Equal(t, uint32(600), cv.Get())

	overridden := NewConfigVariable("max-pool-size", 100)
	ctx.State().SetStorage(ctx.Address(), overridden.Slot(), pez.BytesToBytes32([]byte{0x32}))
	overridden.Override(ctx)
	assert.Equal(t, uint32(50), overridden.Get())

	// later writes are ignored once initialised
	ctx.State().SetStorage(ctx.Address(), overridden.Slot(), pez.BytesToBytes32([]byte{0x10}))
	overridden.Override(ctx)
	assert.Equal(t, uint32(50), overridden.Get())
	assert.Equal(t, "max-pool-size", overridden.Name())
}
