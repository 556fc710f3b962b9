// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/valpool/pez"
)

// SetEraLength sets the blocks per era, zero disables automatic rotation. Privileged.
func (p *Pool) SetEraLength(origin Origin, length uint32) error {
	if err := p.ensureManager(origin); err != nil {
		return err
	}
	if length > p.cfg.MaxEraLength {
		return ErrInvalidEraLength
	}

	err := p.atomically(func(emit func(Event)) error {
		if err := p.eraLength.Set(keyCurrent, &eraLengthEntry{Length: length}); err != nil {
			return err
		}
		emit(EraLengthSet{Length: length})
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("era length set", "length", length)
	return nil
}

// AddManager registers an account allowed to call privileged operations. Root only.
func (p *Pool) AddManager(origin Origin, account pez.Address) error {
	if err := ensureRoot(origin); err != nil {
		return err
	}
	return p.atomically(func(emit func(Event)) error {
		if err := p.managers.Set(account, true); err != nil {
			return err
		}
		emit(ManagerAdded{Account: account})
		return nil
	})
}

// RemoveManager revokes a manager. Root only.
func (p *Pool) RemoveManager(origin Origin, account pez.Address) error {
	if err := ensureRoot(origin); err != nil {
		return err
	}
	return p.atomically(func(emit func(Event)) error {
		p.managers.Delete(account)
		emit(ManagerRemoved{Account: account})
		return nil
	})
}
