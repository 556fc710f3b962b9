// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/vechain/valpool/builtin/pool/reverts"

var (
	// membership
	ErrAlreadyInPool = reverts.New("account already in pool")
	ErrNotInPool     = reverts.New("account not in pool")
	ErrPoolFull      = reverts.New("pool is full")

	// eligibility
	ErrInsufficientStake            = reverts.New("declared stake below floor")
	ErrInsufficientTrustScore       = reverts.New("trust score below threshold")
	ErrMissingRequiredRole          = reverts.New("missing required role")
	ErrInsufficientCommunitySupport = reverts.New("insufficient community support")
	ErrTooManySpecialRoles          = reverts.New("too many special roles")
	ErrInvalidCategory              = reverts.New("invalid category")

	// scheduling
	ErrNotEnoughValidators = reverts.New("not enough eligible validators")
	ErrInvalidEraLength    = reverts.New("invalid era length")

	ErrBadOrigin = reverts.New("bad origin")
)
