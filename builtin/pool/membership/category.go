// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package membership

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Kind tags the three validator categories.
type Kind uint8

const (
	KindStake Kind = iota + 1
	KindParliamentary
	KindMerit
)

func (k Kind) String() string {
	switch k {
	case KindStake:
		return "stake"
	case KindParliamentary:
		return "parliamentary"
	case KindMerit:
		return "merit"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "stake":
		return KindStake, nil
	case "parliamentary":
		return KindParliamentary, nil
	case "merit":
		return KindMerit, nil
	}
	return 0, errors.Errorf("unknown validator category %q", s)
}

// Category is a closed set: StakeValidator, ParliamentaryValidator and MeritValidator.
type Category interface {
	Kind() Kind
	category()
}

// StakeValidator is backed by a declared stake and an external trust score.
type StakeValidator struct {
	MinStake       *uint256.Int
	TrustThreshold *uint256.Int
}

// ParliamentaryValidator is backed by a role credential.
type ParliamentaryValidator struct{}

// MeritValidator is backed by roles and community support.
type MeritValidator struct {
	SpecialRoles       []uint32
	CommunityThreshold uint32
}

func (StakeValidator) Kind() Kind         { return KindStake }
func (ParliamentaryValidator) Kind() Kind { return KindParliamentary }
func (MeritValidator) Kind() Kind         { return KindMerit }

func (StakeValidator) category()         {}
func (ParliamentaryValidator) category() {}
func (MeritValidator) category()         {}

// envelope is the persisted form of a Category.
type envelope struct {
	Kind               Kind
	MinStake           *uint256.Int
	TrustThreshold     *uint256.Int
	SpecialRoles       []uint32
	CommunityThreshold uint32
}

func toEnvelope(c Category) (*envelope, error) {
	switch v := c.(type) {
	case StakeValidator:
		return &envelope{
			Kind:           KindStake,
			MinStake:       orZero(v.MinStake),
			TrustThreshold: orZero(v.TrustThreshold),
		}, nil
	case ParliamentaryValidator:
		return &envelope{Kind: KindParliamentary, MinStake: new(uint256.Int), TrustThreshold: new(uint256.Int)}, nil
	case MeritValidator:
		return &envelope{
			Kind:               KindMerit,
			MinStake:           new(uint256.Int),
			TrustThreshold:     new(uint256.Int),
			SpecialRoles:       v.SpecialRoles,
			CommunityThreshold: v.CommunityThreshold,
		}, nil
	}
	return nil, errors.Errorf("unsupported category %T", c)
}

func (e *envelope) category() (Category, error) {
	switch e.Kind {
	case KindStake:
		return StakeValidator{MinStake: orZero(e.MinStake), TrustThreshold: orZero(e.TrustThreshold)}, nil
	case KindParliamentary:
		return ParliamentaryValidator{}, nil
	case KindMerit:
		return MeritValidator{SpecialRoles: e.SpecialRoles, CommunityThreshold: e.CommunityThreshold}, nil
	}
	return nil, errors.Errorf("corrupted category kind %d", e.Kind)
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
