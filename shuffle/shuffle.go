// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package shuffle implements a hash driven Fisher–Yates shuffle.
//
// Each swap decision consumes one byte of a 32 byte seed, wrapping around when
// the seed is exhausted. A Cursor may be shared by several shuffles so that the
// second list continues from where the first one stopped.
package shuffle

import (
	"github.com/vechain/valpool/pez"
)

// Cursor walks the bytes of a seed.
type Cursor struct {
	seed pez.Bytes32
	pos  int
}

func NewCursor(seed pez.Bytes32) *Cursor {
	return &Cursor{seed: seed}
}

// Next returns the current byte and advances.
func (c *Cursor) Next() byte {
	b := c.seed[c.pos%len(c.seed)]
	c.pos++
	return b
}

// Position is the number of bytes consumed so far.
func (c *Cursor) Position() int {
	return c.pos
}

// Shuffle permutes list in place. It consumes len(list)-1 bytes from the cursor.
func Shuffle[T any](c *Cursor, list []T) {
	for i := len(list) - 1; i > 0; i-- {
		j := int(c.Next()) % (i + 1)
		list[i], list[j] = list[j], list[i]
	}
}
