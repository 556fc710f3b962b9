// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the validator pool: candidates enroll in one of three
// categories, and every era a bounded validator set is drawn from the eligible
// candidates.
package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/pool/history"
	"github.com/vechain/valpool/builtin/pool/membership"
	"github.com/vechain/valpool/builtin/pool/performance"
	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/log"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/randomness"
	"github.com/vechain/valpool/scores"
	"github.com/vechain/valpool/state"
)

var logger = log.WithContext("pkg", "pool")

func SetLogger(l log.Logger) {
	logger = l
}

var (
	slotCurrentEra   = pez.BytesToBytes32([]byte("current-era"))
	slotEraStart     = pez.BytesToBytes32([]byte("era-start"))
	slotEraLength    = pez.BytesToBytes32([]byte("pool-era-length"))
	slotValidatorSet = pez.BytesToBytes32([]byte("validator-set"))
	slotManagers     = pez.BytesToBytes32([]byte("managers"))

	keyCurrent = pez.BytesToBytes32([]byte("current"))
)

type eraLengthEntry struct {
	Length uint32
}

// Pool implements the validator pool on top of contract storage.
// A Pool is bound to one state; build a new one for every block.
type Pool struct {
	cfg   Config
	state *state.State

	members     *membership.Service
	performance *performance.Service
	history     *history.Service

	currentEra   *solidity.Uint32
	eraStart     *solidity.Uint32
	eraLength    *solidity.Mapping[pez.Bytes32, *eraLengthEntry]
	validatorSet *solidity.Mapping[pez.Bytes32, *ValidatorSet]
	managers     *solidity.Mapping[pez.Address, bool]

	scores  scores.Provider
	beacon  randomness.Beacon
	emitter Emitter
}

// New create a new instance.
func New(
	addr pez.Address,
	st *state.State,
	cfg Config,
	provider scores.Provider,
	beacon randomness.Beacon,
	emitter Emitter,
) *Pool {
	sctx := solidity.NewContext(addr, st)
	overrideConfig(sctx, &cfg)
	if emitter == nil {
		emitter = EmitterFunc(func(Event) {})
	}

	return &Pool{
		cfg:   cfg,
		state: st,

		members:     membership.New(sctx),
		performance: performance.New(sctx),
		history:     history.New(sctx, cfg.HistoryDepth),

		currentEra:   solidity.NewUint32(sctx, slotCurrentEra),
		eraStart:     solidity.NewUint32(sctx, slotEraStart),
		eraLength:    solidity.NewMapping[pez.Bytes32, *eraLengthEntry](sctx, slotEraLength),
		validatorSet: solidity.NewMapping[pez.Bytes32, *ValidatorSet](sctx, slotValidatorSet),
		managers:     solidity.NewMapping[pez.Address, bool](sctx, slotManagers),

		scores:  provider,
		beacon:  beacon,
		emitter: emitter,
	}
}

func (p *Pool) Config() Config {
	return p.cfg
}

// atomically runs fn under a state checkpoint. On error every write of fn is
// reverted and its events are dropped; on success the events are emitted.
func (p *Pool) atomically(fn func(emit func(Event)) error) error {
	var events []Event
	checkpoint := p.state.NewCheckpoint()
	if err := fn(func(e Event) { events = append(events, e) }); err != nil {
		p.state.RevertTo(checkpoint)
		return err
	}
	for _, e := range events {
		p.emitter.Emit(e)
	}
	return nil
}

//
// Getters - no state change
//

// Member returns the enrolled member or nil.
func (p *Pool) Member(account pez.Address) (*membership.Member, error) {
	return p.members.Get(account)
}

// Members lists every member in enrollment order.
func (p *Pool) Members() ([]*membership.Member, error) {
	return p.members.List()
}

// Performance returns the performance record or nil.
func (p *Pool) Performance(account pez.Address) (*performance.Record, error) {
	return p.performance.Get(account)
}

// History returns the eras account was selected in, oldest first.
func (p *Pool) History(account pez.Address) (history.Eras, error) {
	return p.history.Get(account)
}

func (p *Pool) PoolSize() (uint32, error) {
	return p.members.Size()
}

func (p *Pool) CurrentEra() (uint32, error) {
	return p.currentEra.Get()
}

func (p *Pool) EraStart() (uint32, error) {
	return p.eraStart.Get()
}

// EraLength returns the blocks per era. Zero disables automatic rotation.
func (p *Pool) EraLength() (uint32, error) {
	ok, err := p.eraLength.Exists(keyCurrent)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get era length")
	}
	if !ok {
		return p.cfg.DefaultEraLength, nil
	}
	entry, err := p.eraLength.Get(keyCurrent)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get era length")
	}
	return entry.Length, nil
}

// NextRotationBlock returns the block from which the automatic hook rotates.
// It reports false when automatic rotation is disabled.
func (p *Pool) NextRotationBlock() (uint32, bool, error) {
	length, err := p.EraLength()
	if err != nil {
		return 0, false, err
	}
	if length == 0 {
		return 0, false, nil
	}
	start, err := p.eraStart.Get()
	if err != nil {
		return 0, false, err
	}
	return start + length, true, nil
}

// CurrentValidatorSet returns the set of the current era, or nil before the first rotation.
func (p *Pool) CurrentValidatorSet() (*ValidatorSet, error) {
	ok, err := p.validatorSet.Exists(keyCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validator set")
	}
	if !ok {
		return nil, nil
	}
	set, err := p.validatorSet.Get(keyCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get validator set")
	}
	return set, nil
}

func (p *Pool) IsManager(account pez.Address) (bool, error) {
	return p.managers.Get(account)
}
