// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package scores defines the external signals the validator pool gates on.
// Scores are computed elsewhere; the pool only reads them.
package scores

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/valpool/pez"
)

type TrustScorer interface {
	TrustScoreOf(account pez.Address) *uint256.Int
}

// RoleScorer reports the strength of the role credentials an account holds.
type RoleScorer interface {
	RoleScoreOf(account pez.Address) uint32
}

// ReferralCounter reports the community support of an account.
type ReferralCounter interface {
	ReferralCountOf(account pez.Address) uint32
}

// TrainingScorer reports the education score of an account.
type TrainingScorer interface {
	TrainingScoreOf(account pez.Address) uint32
}

// Provider bundles every score source.
type Provider interface {
	TrustScorer
	RoleScorer
	ReferralCounter
	TrainingScorer
}

// ErrReadOnly is returned when updating scores of a provider that cannot be written.
var ErrReadOnly = errors.New("scores: provider is read only")

// Writer accepts score updates.
type Writer interface {
	Set(account pez.Address, s Scores)
}

// Scores is a snapshot of every score for one account.
type Scores struct {
	Trust    *uint256.Int `json:"trust" yaml:"trust"`
	Role     uint32       `json:"role" yaml:"role"`
	Referral uint32       `json:"referral" yaml:"referral"`
	Training uint32       `json:"training" yaml:"training"`
}

// Snapshot reads all scores of account from p.
func Snapshot(p Provider, account pez.Address) Scores {
	return Scores{
		Trust:    p.TrustScoreOf(account),
		Role:     p.RoleScoreOf(account),
		Referral: p.ReferralCountOf(account),
		Training: p.TrainingScoreOf(account),
	}
}
