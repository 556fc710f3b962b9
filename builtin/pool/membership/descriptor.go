// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package membership

import (
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Descriptor is the external (JSON and YAML) form of a Category.
// Stake amounts are decimal strings since they may exceed 64 bits.
type Descriptor struct {
	Kind               string   `json:"kind" yaml:"kind"`
	MinStake           string   `json:"minStake,omitempty" yaml:"minStake,omitempty"`
	TrustThreshold     string   `json:"trustThreshold,omitempty" yaml:"trustThreshold,omitempty"`
	SpecialRoles       []uint32 `json:"specialRoles,omitempty" yaml:"specialRoles,omitempty"`
	CommunityThreshold uint32   `json:"communityThreshold,omitempty" yaml:"communityThreshold,omitempty"`
}

// Describe converts a Category into its Descriptor.
func Describe(c Category) Descriptor {
	switch v := c.(type) {
	case StakeValidator:
		return Descriptor{
			Kind:           KindStake.String(),
			MinStake:       orZero(v.MinStake).Dec(),
			TrustThreshold: orZero(v.TrustThreshold).Dec(),
		}
	case MeritValidator:
		return Descriptor{
			Kind:               KindMerit.String(),
			SpecialRoles:       v.SpecialRoles,
			CommunityThreshold: v.CommunityThreshold,
		}
	default:
		return Descriptor{Kind: KindParliamentary.String()}
	}
}

// Category parses the descriptor.
func (d Descriptor) Category() (Category, error) {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindStake:
		minStake, err := parseAmount(d.MinStake)
		if err != nil {
			return nil, errors.Wrap(err, "minStake")
		}
		trust, err := parseAmount(d.TrustThreshold)
		if err != nil {
			return nil, errors.Wrap(err, "trustThreshold")
		}
		return StakeValidator{MinStake: minStake, TrustThreshold: trust}, nil
	case KindMerit:
		return MeritValidator{SpecialRoles: d.SpecialRoles, CommunityThreshold: d.CommunityThreshold}, nil
	default:
		return ParliamentaryValidator{}, nil
	}
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	return uint256.FromDecimal(s)
}

// MarshalCategory renders a Category as descriptor JSON.
func MarshalCategory(c Category) ([]byte, error) {
	return json.Marshal(Describe(c))
}

// UnmarshalCategory parses descriptor JSON.
func UnmarshalCategory(data []byte) (Category, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d.Category()
}
