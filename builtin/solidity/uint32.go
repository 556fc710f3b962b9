// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/vechain/valpool/pez"
)

// Uint32 is a wrapper for storage and retrieval of an uint32 counter or scalar.
type Uint32 struct {
	context *Context
	pos     pez.Bytes32
}

func NewUint32(context *Context, pos pez.Bytes32) *Uint32 {
	return &Uint32{context: context, pos: pos}
}

func (u *Uint32) Get() (uint32, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	for _, b := range storage[:28] {
		if b != 0 {
			return 0, errors.New("stored value overflows uint32")
		}
	}
	return binary.BigEndian.Uint32(storage[28:]), nil
}

func (u *Uint32) Set(value uint32) {
	var storage pez.Bytes32
	binary.BigEndian.PutUint32(storage[28:], value)
	u.context.state.SetStorage(u.context.address, u.pos, storage)
}

// Add increases the stored value, failing on overflow.
func (u *Uint32) Add(delta uint32) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	if value > math.MaxUint32-delta {
		return errors.New("uint32 overflow")
	}
	u.Set(value + delta)
	return nil
}

// Sub decreases the stored value, failing on underflow.
func (u *Uint32) Sub(delta uint32) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	if value < delta {
		return errors.New("uint32 underflow")
	}
	u.Set(value - delta)
	return nil
}
