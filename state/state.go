// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/valpool/kv"
	"github.com/vechain/valpool/pez"
	"github.com/vechain/valpool/stackedmap"
)

// StorageBucket is the kv bucket holding all contract storage.
const StorageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr pez.Address
	key  pez.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, pez.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages the storage of builtin contracts.
// An empty raw value stands for an absent slot.
type State struct {
	store kv.Store
	sm    *stackedmap.StackedMap[storageKey, []byte]
}

// New create state object.
func New(store kv.Store) *State {
	s := &State{store: StorageBucket.NewStore(store)}
	s.sm = stackedmap.New(s.storeGetter)
	return s
}

func (s *State) storeGetter(key storageKey) ([]byte, bool, error) {
	raw, err := s.store.Get(key.dbKey())
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr pez.Address, key pez.Bytes32) ([]byte, error) {
	raw, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return raw, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr pez.Address, key pez.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, append([]byte(nil), raw...))
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr pez.Address, key pez.Bytes32) (pez.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return pez.Bytes32{}, err
	}
	if len(raw) == 0 {
		return pez.Bytes32{}, nil
	}
	var content []byte
	if err := rlp.DecodeBytes(raw, &content); err != nil {
		return pez.Bytes32{}, &Error{err}
	}
	return pez.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
// Zero value clears the slot.
func (s *State) SetStorage(addr pez.Address, key, value pez.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	trimmed := trimLeftZeroes(value[:])
	raw, _ := rlp.EncodeToBytes(trimmed)
	s.SetRawStorage(addr, key, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr pez.Address, key pez.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr pez.Address, key pez.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit changes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		changes[k] = v
		return true
	})
	return &Stage{store: s.store, changes: changes}
}

func trimLeftZeroes(s []byte) []byte {
	for i, v := range s {
		if v != 0 {
			return s[i:]
		}
	}
	return nil
}
