// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/builtin/pool/reverts"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/shuffle"
)

// buckets holds eligible candidates per category in member iteration order.
type buckets struct {
	stake, parliamentary, merit []pez.Address
}

// OnInitialize runs at the start of every block. Once the era length has elapsed it
// starts a new era. A rotation without enough eligible validators is logged and
// retried on the next block; only storage failures are returned.
func (p *Pool) OnInitialize(block uint32) error {
	next, enabled, err := p.NextRotationBlock()
	if err != nil {
		return err
	}
	if !enabled || block < next {
		return nil
	}

	if _, err := p.rotate(block); err != nil {
		if !reverts.IsRevertErr(err) {
			return err
		}
		logger.Warn("era rotation skipped", "block", block, "error", err)
		p.emitter.Emit(RotationFailed{Block: block, Reason: err.Error()})
	}
	return nil
}

// ForceRotate starts a new era immediately. Privileged.
func (p *Pool) ForceRotate(origin Origin, block uint32) (*ValidatorSet, error) {
	if err := p.ensureManager(origin); err != nil {
		return nil, err
	}
	return p.rotate(block)
}

// rotate selects the validator set of the next era and applies it, or changes nothing.
func (p *Pool) rotate(block uint32) (*ValidatorSet, error) {
	logger.Debug("rotating era", "block", block)

	var set *ValidatorSet
	err := p.atomically(func(emit func(Event)) error {
		era, err := p.currentEra.Get()
		if err != nil {
			return err
		}
		set, err = p.selectValidators(era + 1)
		if err != nil {
			return err
		}
		if err := p.applyEra(set, block); err != nil {
			return err
		}
		emit(EraStarted{
			Era:           set.Era,
			Block:         block,
			Stake:         set.Stake,
			Parliamentary: set.Parliamentary,
			Merit:         set.Merit,
		})
		return nil
	})
	if err != nil {
		logger.Info("era rotation failed", "block", block, "error", err)
		return nil, err
	}

	logger.Info("era started", "era", set.Era, "block", block,
		"stake", len(set.Stake),
		"parliamentary", len(set.Parliamentary),
		"merit", len(set.Merit),
	)
	return set, nil
}

// collect buckets the members eligible for era by category.
func (p *Pool) collect(era uint32) (*buckets, error) {
	stakeTarget, parlTarget, meritTarget := p.cfg.Targets()
	b := &buckets{}

	add := func(list []pez.Address, target int, account pez.Address) []pez.Address {
		if p.cfg.LegacyBucketing && len(list) >= target {
			return list
		}
		return append(list, account)
	}

	err := p.members.Iter(func(m *membership.Member) (bool, error) {
		eras, err := p.history.Get(m.Account)
		if err != nil {
			return false, err
		}
		if eras.ServedWithin(era, p.cfg.CooldownEras) {
			return true, nil
		}

		rec, err := p.performance.Get(m.Account)
		if err != nil {
			return false, err
		}
		if rec == nil {
			return false, errors.Errorf("member %v has no performance record", m.Account)
		}
		if rec.ReputationScore < p.cfg.ReputationThreshold {
			return true, nil
		}

		switch m.Category.Kind() {
		case membership.KindStake:
			b.stake = add(b.stake, stakeTarget, m.Account)
		case membership.KindParliamentary:
			b.parliamentary = add(b.parliamentary, parlTarget, m.Account)
		case membership.KindMerit:
			b.merit = add(b.merit, meritTarget, m.Account)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// selectValidators computes the validator set of era without writing state.
func (p *Pool) selectValidators(era uint32) (*ValidatorSet, error) {
	b, err := p.collect(era)
	if err != nil {
		return nil, err
	}

	seed, _ := p.beacon.Random(p.cfg.RandomnessContext)
	cursor := shuffle.NewCursor(seed)
	// one cursor across the three lists, in this order
	shuffle.Shuffle(cursor, b.stake)
	shuffle.Shuffle(cursor, b.parliamentary)
	shuffle.Shuffle(cursor, b.merit)

	stakeTarget, parlTarget, meritTarget := p.cfg.Targets()
	set := &ValidatorSet{
		Era:           era,
		Stake:         truncate(b.stake, stakeTarget),
		Parliamentary: truncate(b.parliamentary, parlTarget),
		Merit:         truncate(b.merit, meritTarget),
	}
	if set.TotalCount() < int(p.cfg.MinQuorum) {
		return nil, ErrNotEnoughValidators
	}
	return set, nil
}

func (p *Pool) applyEra(set *ValidatorSet, block uint32) error {
	p.currentEra.Set(set.Era)
	p.eraStart.Set(block)
	if err := p.validatorSet.Set(keyCurrent, set); err != nil {
		return errors.Wrap(err, "failed to set validator set")
	}
	for _, account := range set.Flatten() {
		if err := p.history.Record(account, set.Era); err != nil {
			return err
		}
	}
	return nil
}

func truncate(list []pez.Address, n int) []pez.Address {
	if len(list) > n {
		list = list[:n]
	}
	if list == nil {
		list = []pez.Address{}
	}
	return list
}
