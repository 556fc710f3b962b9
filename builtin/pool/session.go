// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/valpool/pez"
)

// SessionManager is the view the session rotation layer has of the pool.
type SessionManager interface {
	ValidatorsForNextSession() ([]pez.Address, bool, error)
	OnSessionStart(index uint32)
	OnSessionEnd(index uint32)
}

var _ SessionManager = (*Pool)(nil)

// ValidatorsForNextSession returns the flattened current validator set.
// It reports false before the first era has been selected.
func (p *Pool) ValidatorsForNextSession() ([]pez.Address, bool, error) {
	set, err := p.CurrentValidatorSet()
	if err != nil {
		return nil, false, err
	}
	if set == nil {
		return nil, false, nil
	}
	return set.Flatten(), true, nil
}

// OnSessionStart is a hook point; performance is reported through UpdatePerformance.
func (p *Pool) OnSessionStart(index uint32) {
	logger.Trace("session started", "index", index)
}

func (p *Pool) OnSessionEnd(index uint32) {
	logger.Trace("session ended", "index", index)
}
