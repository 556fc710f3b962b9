// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/pez"
)

// Calls accepted by the node.
const (
	CallJoin              = "join"
	CallLeave             = "leave"
	CallUpdateCategory    = "updateCategory"
	CallUpdatePerformance = "updatePerformance"
	CallSetEraLength      = "setEraLength"
	CallForceRotate       = "forceRotate"
	CallAddManager        = "addManager"
	CallRemoveManager     = "removeManager"
)

// OriginRoot is the origin string of root calls.
const OriginRoot = "root"

var (
	errUnknownCall          = errors.New("unknown call")
	ErrRootDisabled         = errors.New("root origin is disabled")
	ErrManagerCallsDisabled = errors.New("manager calls are disabled")
	errMissingField         = errors.New("missing field")
	ErrQueueFull            = errors.New("extrinsic queue is full")
)

// Extrinsic is a pool call submitted to the node.
type Extrinsic struct {
	Call     string                 `json:"call"`
	Origin   string                 `json:"origin"`
	Category *membership.Descriptor `json:"category,omitempty"`
	Account  *pez.Address           `json:"account,omitempty"`

	Produced  uint32 `json:"produced,omitempty"`
	Missed    uint32 `json:"missed,omitempty"`
	EraPoints uint32 `json:"eraPoints,omitempty"`
	Length    uint32 `json:"length,omitempty"`
}

// Receipt reports the outcome of an extrinsic.
type Receipt struct {
	Block    uint32 `json:"block"`
	Index    int    `json:"index"`
	Call     string `json:"call"`
	Reverted bool   `json:"reverted"`
	Error    string `json:"error,omitempty"`
}

// ParseOrigin parses "root" or a hex account address.
func ParseOrigin(s string) (pool.Origin, error) {
	if strings.EqualFold(s, OriginRoot) {
		return pool.Root{}, nil
	}
	addr, err := pez.ParseAddress(s)
	if err != nil {
		return nil, errors.WithMessage(err, "origin")
	}
	return pool.Signed{Account: addr}, nil
}

// privileged reports whether the call needs a manager or root origin.
func (x *Extrinsic) privileged() bool {
	switch x.Call {
	case CallUpdatePerformance, CallSetEraLength, CallForceRotate, CallAddManager, CallRemoveManager:
		return true
	}
	return false
}

// Validate checks the extrinsic is well formed and allowed by opts without touching state.
func (x *Extrinsic) Validate(opts Options) error {
	origin, err := ParseOrigin(x.Origin)
	if err != nil {
		return err
	}
	switch origin.(type) {
	case pool.Root:
		if !opts.AllowRoot {
			return ErrRootDisabled
		}
	case pool.Signed:
		if x.privileged() && !opts.AllowManagerCalls {
			return errors.WithMessagef(ErrManagerCallsDisabled, "%q", x.Call)
		}
	}
	switch x.Call {
	case CallJoin, CallUpdateCategory:
		if x.Category == nil {
			return errors.WithMessage(errMissingField, "category")
		}
		if _, err := x.Category.Category(); err != nil {
			return errors.WithMessage(err, "category")
		}
	case CallUpdatePerformance, CallAddManager, CallRemoveManager:
		if x.Account == nil {
			return errors.WithMessage(errMissingField, "account")
		}
	case CallLeave, CallSetEraLength, CallForceRotate:
	default:
		return errors.WithMessagef(errUnknownCall, "%q", x.Call)
	}
	return nil
}

// dispatch applies a validated extrinsic to p.
func (x *Extrinsic) dispatch(p *pool.Pool, block uint32) error {
	origin, err := ParseOrigin(x.Origin)
	if err != nil {
		return err
	}

	switch x.Call {
	case CallJoin, CallUpdateCategory:
		category, err := x.Category.Category()
		if err != nil {
			return err
		}
		if x.Call == CallJoin {
			return p.Join(origin, category)
		}
		return p.UpdateCategory(origin, category)
	case CallLeave:
		return p.Leave(origin)
	case CallUpdatePerformance:
		return p.UpdatePerformance(origin, *x.Account, x.Produced, x.Missed, x.EraPoints)
	case CallSetEraLength:
		return p.SetEraLength(origin, x.Length)
	case CallForceRotate:
		_, err := p.ForceRotate(origin, block)
		return err
	case CallAddManager:
		return p.AddManager(origin, *x.Account)
	case CallRemoveManager:
		return p.RemoveManager(origin, *x.Account)
	}
	return errors.WithMessagef(errUnknownCall, "%q", x.Call)
}
