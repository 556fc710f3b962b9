// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package performance

import (
	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/pez"
)

var slotPerformance = pez.BytesToBytes32([]byte("pool-performance"))

type Service struct {
	records *solidity.Mapping[pez.Address, *Record]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		records: solidity.NewMapping[pez.Address, *Record](sctx, slotPerformance),
	}
}

// Get returns the record, or nil when none exists.
func (s *Service) Get(account pez.Address) (*Record, error) {
	ok, err := s.records.Exists(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get performance")
	}
	if !ok {
		return nil, nil
	}
	rec, err := s.records.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get performance")
	}
	return rec, nil
}

func (s *Service) Set(account pez.Address, rec *Record) error {
	return errors.Wrap(s.records.Set(account, rec), "failed to set performance")
}

func (s *Service) Delete(account pez.Address) {
	s.records.Delete(account)
}
