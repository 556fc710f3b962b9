// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pez

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const AddressLength = common.AddressLength

// Address is the account identifier used across the pool. It encodes as a
// lower case 0x prefixed hex string in JSON, YAML and map keys.
type Address common.Address

func (a Address) String() string { return hexutil.Encode(a[:]) }
func (a Address) Bytes() []byte  { return a[:] }
func (a Address) IsZero() bool   { return a == Address{} }

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	return decodeFixed(string(text), a[:])
}

func ParseAddress(s string) (Address, error) {
	var a Address
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return Address{}, err
	}
	return a, nil
}

func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress left-pads or left-crops b to the address length.
func BytesToAddress(b []byte) Address {
	return Address(common.BytesToAddress(b))
}
