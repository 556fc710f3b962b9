// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/builtin/pool/performance"
	"github.com/vechain/valpool/node"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/scores"
)

// Member is the public view of an enrolled candidate.
type Member struct {
	Account     pez.Address           `json:"account"`
	Category    membership.Descriptor `json:"category"`
	JoinedEra   uint32                `json:"joinedEra"`
	Performance *performance.Record   `json:"performance"`
	History     []uint32              `json:"history"`
	Scores      scores.Scores         `json:"scores"`
	Manager     bool                  `json:"manager"`
}

type ValidatorSet struct {
	Era           uint32        `json:"era"`
	Total         int           `json:"total"`
	Stake         []pez.Address `json:"stake"`
	Parliamentary []pez.Address `json:"parliamentary"`
	Merit         []pez.Address `json:"merit"`
}

type NextValidators struct {
	Ready      bool          `json:"ready"`
	Validators []pez.Address `json:"validators"`
}

type Era struct {
	Era          uint32     `json:"era"`
	Start        uint32     `json:"start"`
	Length       uint32     `json:"length"`
	NextRotation *uint32    `json:"nextRotation"`
	PoolSize     uint32     `json:"poolSize"`
	Head         *node.Head `json:"head"`
}

// Submitted answers an extrinsic submission. Receipt is set when the caller waited.
type Submitted struct {
	Queued  bool          `json:"queued"`
	Receipt *node.Receipt `json:"receipt,omitempty"`
}

func convertSet(set *pool.ValidatorSet) *ValidatorSet {
	return &ValidatorSet{
		Era:           set.Era,
		Total:         set.TotalCount(),
		Stake:         nonNil(set.Stake),
		Parliamentary: nonNil(set.Parliamentary),
		Merit:         nonNil(set.Merit),
	}
}

func nonNil(list []pez.Address) []pez.Address {
	if list == nil {
		return []pez.Address{}
	}
	return list
}
