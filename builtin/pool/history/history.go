// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package history

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/pez"
)

var slotHistory = pez.BytesToBytes32([]byte("pool-history"))

// Eras lists, oldest first, the eras an account was selected in.
type Eras []uint32

// Append adds era and evicts the oldest entries beyond depth.
func (e Eras) Append(era uint32, depth int) Eras {
	out := append(slices.Clone(e), era)
	if depth > 0 && len(out) > depth {
		out = out[len(out)-depth:]
	}
	return out
}

// ServedWithin reports whether any recorded era is less than cooldown eras before era.
func (e Eras) ServedWithin(era, cooldown uint32) bool {
	for _, served := range e {
		if served >= era || era-served < cooldown {
			return true
		}
	}
	return false
}

// Service stores the selection history per account.
type Service struct {
	eras  *solidity.Mapping[pez.Address, Eras]
	depth int
}

func New(sctx *solidity.Context, depth int) *Service {
	return &Service{
		eras:  solidity.NewMapping[pez.Address, Eras](sctx, slotHistory),
		depth: depth,
	}
}

func (s *Service) Get(account pez.Address) (Eras, error) {
	eras, err := s.eras.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get history")
	}
	return eras, nil
}

// Record appends era to the history of account.
func (s *Service) Record(account pez.Address, era uint32) error {
	eras, err := s.Get(account)
	if err != nil {
		return err
	}
	return errors.Wrap(s.eras.Set(account, eras.Append(era, s.depth)), "failed to set history")
}

func (s *Service) Delete(account pez.Address) {
	s.eras.Delete(account)
}
