// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package performance

import (
	"math"

	"github.com/vechain/valpool/pez"
)

// Record holds the rolling block production counters of a validator.
type Record struct {
	BlocksProduced  uint32 `json:"blocksProduced"`
	BlocksMissed    uint32 `json:"blocksMissed"`
	EraPoints       uint32 `json:"eraPoints"`
	LastActiveEra   uint32 `json:"lastActiveEra"`
	ReputationScore uint8  `json:"reputationScore"`
}

// NewRecord returns the record created at enrollment.
func NewRecord(era uint32) *Record {
	return &Record{
		LastActiveEra:   era,
		ReputationScore: pez.NeutralReputation,
	}
}

// Apply accumulates the counters, replaces era points and recomputes the reputation.
// Counters saturate at MaxUint32.
func (r *Record) Apply(produced, missed, eraPoints, era uint32) {
	r.BlocksProduced = saturatingAdd(r.BlocksProduced, produced)
	r.BlocksMissed = saturatingAdd(r.BlocksMissed, missed)
	r.EraPoints = eraPoints
	r.LastActiveEra = era

	if rep, ok := Reputation(r.BlocksProduced, r.BlocksMissed); ok {
		r.ReputationScore = rep
	}
}

// Reputation is produced*100/(produced+missed) capped at 100.
// It reports false when there is no block to judge from.
func Reputation(produced, missed uint32) (uint8, bool) {
	total := uint64(produced) + uint64(missed)
	if total == 0 {
		return 0, false
	}
	rate := uint64(produced) * 100 / total
	if rate > 100 {
		rate = 100
	}
	return uint8(rate), true
}

func saturatingAdd(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}
