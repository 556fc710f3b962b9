// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package randomness provides the beacons the era scheduler draws its shuffle seed from.
package randomness

import (
	"github.com/vechain/valpool/pez"
)

// Beacon returns a random hash for subject and the block number the randomness is
// known from. The same subject at the same chain position yields the same hash.
type Beacon interface {
	Random(subject []byte) (pez.Bytes32, uint32)
}

// Source is a Beacon fed with every block the node builds.
type Source interface {
	Beacon
	Feed(number uint32, hash pez.Bytes32)
}
