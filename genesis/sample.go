// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/pez"
)

// DevAccount returns the i-th well known development account.
func DevAccount(i int) pez.Address {
	return pez.BytesToAddress(pez.Blake2b([]byte("valpool-dev"), []byte{byte(i)}).Bytes())
}

// Sample returns a development genesis with enough members of every category
// to fill the validator set at block zero.
func Sample() *Genesis {
	eraLength := uint32(20)
	gen := &Genesis{
		EraLength: &eraLength,
		Managers:  []pez.Address{DevAccount(0)},
		Rotate:    true,
	}

	add := func(i int, row ScoreRow, category membership.Descriptor) {
		row.Account = DevAccount(i)
		gen.Scores = append(gen.Scores, row)
		gen.Members = append(gen.Members, Member{Account: row.Account, Category: category})
	}
	i := 1
	for ; i <= 12; i++ {
		add(i, ScoreRow{Trust: "80", Training: 10},
			membership.Descriptor{Kind: "stake", MinStake: "5000", TrustThreshold: "50"})
	}
	for ; i <= 20; i++ {
		add(i, ScoreRow{Role: 2, Training: 40},
			membership.Descriptor{Kind: "parliamentary"})
	}
	for ; i <= 27; i++ {
		add(i, ScoreRow{Role: 1, Referral: 600, Training: 90},
			membership.Descriptor{Kind: "merit", SpecialRoles: []uint32{1, 3}, CommunityThreshold: 500})
	}
	return gen
}
