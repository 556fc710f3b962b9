// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package scores

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/vechain/valpool/pez"
)

// Table is an in-memory Provider. Unknown accounts score zero.
type Table struct {
	lock sync.RWMutex
	rows map[pez.Address]Scores
}

func NewTable() *Table {
	return &Table{rows: make(map[pez.Address]Scores)}
}

// Set replaces every score of account.
func (t *Table) Set(account pez.Address, s Scores) {
	if s.Trust != nil {
		s.Trust = s.Trust.Clone()
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	t.rows[account] = s
}

func (t *Table) Get(account pez.Address) Scores {
	t.lock.RLock()
	defer t.lock.RUnlock()
	s := t.rows[account]
	if s.Trust == nil {
		s.Trust = new(uint256.Int)
	} else {
		s.Trust = s.Trust.Clone()
	}
	return s
}

func (t *Table) Len() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return len(t.rows)
}

func (t *Table) TrustScoreOf(account pez.Address) *uint256.Int { return t.Get(account).Trust }
func (t *Table) RoleScoreOf(account pez.Address) uint32        { return t.Get(account).Role }
func (t *Table) ReferralCountOf(account pez.Address) uint32    { return t.Get(account).Referral }
func (t *Table) TrainingScoreOf(account pez.Address) uint32    { return t.Get(account).Training }
