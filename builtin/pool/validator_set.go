// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/valpool/pez"
)

// ValidatorSet is the selection output of one era. It is never modified once stored.
type ValidatorSet struct {
	Era           uint32        `json:"era"`
	Stake         []pez.Address `json:"stake"`
	Parliamentary []pez.Address `json:"parliamentary"`
	Merit         []pez.Address `json:"merit"`
}

func (v *ValidatorSet) TotalCount() int {
	return len(v.Stake) + len(v.Parliamentary) + len(v.Merit)
}

// Flatten lists stake, parliamentary then merit validators.
func (v *ValidatorSet) Flatten() []pez.Address {
	out := make([]pez.Address, 0, v.TotalCount())
	out = append(out, v.Stake...)
	out = append(out, v.Parliamentary...)
	return append(out, v.Merit...)
}

func (v *ValidatorSet) Contains(account pez.Address) bool {
	for _, a := range v.Flatten() {
		if a == account {
			return true
		}
	}
	return false
}
