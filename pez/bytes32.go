// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pez

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Bytes32 is a 32 byte hash or storage key.
type Bytes32 [32]byte

func (b Bytes32) String() string { return hexutil.Encode(b[:]) }
func (b Bytes32) Bytes() []byte  { return b[:] }
func (b Bytes32) IsZero() bool   { return b == Bytes32{} }

// AbbrevString keeps the first 4 and last 4 bytes, for logs.
func (b Bytes32) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", b[:4], b[28:])
}

func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	return decodeFixed(string(text), b[:])
}

func ParseBytes32(s string) (Bytes32, error) {
	var b Bytes32
	if err := b.UnmarshalText([]byte(s)); err != nil {
		return Bytes32{}, err
	}
	return b, nil
}

// BytesToBytes32 left-pads or left-crops b to 32 bytes.
func BytesToBytes32(b []byte) Bytes32 {
	return Bytes32(common.BytesToHash(b))
}
