// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/builtin/pool/performance"
	"github.com/vechain/valpool/pez"
)

// checkEligibility validates the category requirements of account against the score providers.
func (p *Pool) checkEligibility(account pez.Address, category membership.Category) error {
	switch c := category.(type) {
	case membership.StakeValidator:
		if c.MinStake == nil || c.MinStake.Lt(p.cfg.MinStakeFloor) {
			return ErrInsufficientStake
		}
		if c.TrustThreshold != nil && p.scores.TrustScoreOf(account).Lt(c.TrustThreshold) {
			return ErrInsufficientTrustScore
		}
	case membership.ParliamentaryValidator:
		if p.scores.RoleScoreOf(account) == 0 {
			return ErrMissingRequiredRole
		}
	case membership.MeritValidator:
		if len(c.SpecialRoles) > p.cfg.MaxSpecialRoles {
			return ErrTooManySpecialRoles
		}
		if p.scores.RoleScoreOf(account) == 0 {
			return ErrMissingRequiredRole
		}
		if p.scores.ReferralCountOf(account) < c.CommunityThreshold {
			return ErrInsufficientCommunitySupport
		}
	default:
		return ErrInvalidCategory
	}
	return nil
}

//
// Setters - state change
//

// Join enrolls the signing account with the requested category.
func (p *Pool) Join(origin Origin, category membership.Category) error {
	account, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrInvalidCategory
	}
	logger.Debug("joining pool", "account", account, "category", category.Kind())

	err = p.atomically(func(emit func(Event)) error {
		ok, err := p.members.Contains(account)
		if err != nil {
			return err
		}
		if ok {
			return ErrAlreadyInPool
		}
		size, err := p.members.Size()
		if err != nil {
			return err
		}
		if size >= p.cfg.MaxPoolSize {
			return ErrPoolFull
		}
		if err := p.checkEligibility(account, category); err != nil {
			return err
		}

		era, err := p.currentEra.Get()
		if err != nil {
			return err
		}
		if err := p.members.Add(account, category, era); err != nil {
			return err
		}
		if err := p.performance.Set(account, performance.NewRecord(era)); err != nil {
			return err
		}
		emit(Joined{Account: account, Category: membership.Describe(category)})
		return nil
	})
	if err != nil {
		logger.Info("join failed", "account", account, "error", err)
		return err
	}

	logger.Info("joined pool", "account", account, "category", category.Kind())
	return nil
}

// Leave removes the signing account with its performance record and selection history.
func (p *Pool) Leave(origin Origin) error {
	account, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	logger.Debug("leaving pool", "account", account)

	err = p.atomically(func(emit func(Event)) error {
		ok, err := p.members.Contains(account)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotInPool
		}
		if err := p.members.Remove(account); err != nil {
			return err
		}
		p.performance.Delete(account)
		p.history.Delete(account)
		emit(Left{Account: account})
		return nil
	})
	if err != nil {
		logger.Info("leave failed", "account", account, "error", err)
		return err
	}

	logger.Info("left pool", "account", account)
	return nil
}

// UpdateCategory re-validates and replaces the category of the signing account.
// Performance and selection history are kept.
func (p *Pool) UpdateCategory(origin Origin, category membership.Category) error {
	account, err := ensureSigned(origin)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrInvalidCategory
	}
	logger.Debug("updating category", "account", account, "category", category.Kind())

	err = p.atomically(func(emit func(Event)) error {
		ok, err := p.members.Contains(account)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotInPool
		}
		if err := p.checkEligibility(account, category); err != nil {
			return err
		}
		if err := p.members.SetCategory(account, category); err != nil {
			return err
		}
		emit(CategoryUpdated{Account: account, Category: membership.Describe(category)})
		return nil
	})
	if err != nil {
		logger.Info("update category failed", "account", account, "error", err)
		return err
	}

	logger.Info("updated category", "account", account, "category", category.Kind())
	return nil
}

// UpdatePerformance accumulates block counters for a validator. Privileged.
// Accounts without a record are ignored unless StrictPerformance is set.
func (p *Pool) UpdatePerformance(origin Origin, account pez.Address, produced, missed, eraPoints uint32) error {
	if err := p.ensureManager(origin); err != nil {
		return err
	}
	logger.Debug("updating performance", "account", account, "produced", produced, "missed", missed, "points", eraPoints)

	return p.atomically(func(emit func(Event)) error {
		rec, err := p.performance.Get(account)
		if err != nil {
			return err
		}
		if rec == nil {
			if p.cfg.StrictPerformance {
				return ErrNotInPool
			}
			logger.Debug("no performance record, ignored", "account", account)
			return nil
		}
		era, err := p.currentEra.Get()
		if err != nil {
			return err
		}
		rec.Apply(produced, missed, eraPoints, era)
		if err := p.performance.Set(account, rec); err != nil {
			return err
		}
		emit(PerformanceUpdated{Account: account, Record: *rec})
		return nil
	})
}
