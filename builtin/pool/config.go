// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/pez"
)

// Config holds the runtime constants of the pool.
type Config struct {
	MaxPoolSize         uint32
	MinStakeFloor       *uint256.Int
	TotalSeats          uint32
	MinQuorum           uint32
	CooldownEras        uint32
	HistoryDepth        int
	ReputationThreshold uint8
	MaxSpecialRoles     int
	DefaultEraLength    uint32
	MaxEraLength        uint32
	RandomnessContext   []byte

	// LegacyBucketing caps each category bucket at its seat target while iterating
	// members, before the shuffle. The default collects every eligible member first.
	LegacyBucketing bool
	// StrictPerformance rejects performance updates for accounts not in the pool
	// instead of ignoring them.
	StrictPerformance bool
}

func DefaultConfig() Config {
	return Config{
		MaxPoolSize:         pez.MaxPoolSize,
		MinStakeFloor:       uint256.NewInt(pez.MinStakeFloor),
		TotalSeats:          pez.TotalSeats,
		MinQuorum:           pez.MinQuorum,
		CooldownEras:        pez.CooldownEras,
		HistoryDepth:        pez.HistoryDepth,
		ReputationThreshold: pez.ReputationThreshold,
		MaxSpecialRoles:     pez.MaxSpecialRoles,
		DefaultEraLength:    pez.DefaultEraLength,
		MaxEraLength:        pez.MaxEraLength,
		RandomnessContext:   pez.RandomnessContext,
	}
}

// Targets splits TotalSeats into the stake, parliamentary and merit seat targets.
// The rounding remainder goes to merit.
func (c Config) Targets() (stake, parliamentary, merit int) {
	stake = int(c.TotalSeats * pez.StakeShare / pez.ShareDenominator)
	parliamentary = int(c.TotalSeats * pez.ParliamentaryShare / pez.ShareDenominator)
	merit = int(c.TotalSeats) - stake - parliamentary
	return
}

// storage overrides, read once per pool instance
func overrideConfig(sctx *solidity.Context, cfg *Config) {
	maxPoolSize := solidity.NewConfigVariable("max-pool-size", cfg.MaxPoolSize)
	maxPoolSize.Override(sctx)
	cfg.MaxPoolSize = maxPoolSize.Get()

	eraLength := solidity.NewConfigVariable("era-length", cfg.DefaultEraLength)
	eraLength.Override(sctx)
	cfg.DefaultEraLength = eraLength.Get()
}
