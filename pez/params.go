// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pez

// Constants of the validator pool.
const (
	MaxPoolSize uint32 = 100 // maximum number of enrolled candidates.

	// TotalSeats is split 10:6:5 between stake, parliamentary and merit validators.
	TotalSeats         uint32 = 21
	StakeShare         uint32 = 10
	ParliamentaryShare uint32 = 6
	MeritShare         uint32 = 5
	ShareDenominator          = StakeShare + ParliamentaryShare + MeritShare

	MinStakeFloor       uint64 = 1000 // least stake a stake validator may declare.
	MinQuorum           uint32 = 3    // BFT safety floor.
	CooldownEras        uint32 = 3    // eras an account sits out after being selected.
	HistoryDepth        int    = 5    // bound of the selection history per account.
	ReputationThreshold uint8  = 70   // minimum reputation to be selected, inclusive.
	NeutralReputation   uint8  = 100  // reputation assigned at enrollment.
	MaxSpecialRoles     int    = 10   // bound of merit validator role set.

	DefaultEraLength uint32 = 600    // blocks per era.
	MaxEraLength     uint32 = 100800 // one week of blocks.
	BlockInterval    uint64 = 6      // seconds between two blocks.

	// RecentBlockHashes is how many parent hashes the randomness mix remembers.
	RecentBlockHashes = 81
)

var (
	// RandomnessContext is the subject used for the selection randomness draw.
	RandomnessContext = []byte("validator-pool-selection")

	// PoolContractAddress is the storage owner of the validator pool.
	PoolContractAddress = BytesToAddress([]byte("ValidatorPool"))
)
