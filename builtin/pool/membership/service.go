// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package membership

import (
	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/pool/linkedlist"
	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/pez"
)

var (
	slotMembers = pez.BytesToBytes32([]byte("pool-members"))
	slotHead    = pez.BytesToBytes32([]byte("pool-head"))
	slotTail    = pez.BytesToBytes32([]byte("pool-tail"))
	slotSize    = pez.BytesToBytes32([]byte("pool-size"))
)

// Member is an enrolled account.
type Member struct {
	Account   pez.Address
	Category  Category
	JoinedEra uint32
}

type entry struct {
	Category  *envelope
	JoinedEra uint32
}

// Service is the pool membership store. The linked list count doubles as the pool size,
// so size and membership are updated in the same call.
type Service struct {
	members *solidity.Mapping[pez.Address, *entry]
	list    *linkedlist.LinkedList
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		members: solidity.NewMapping[pez.Address, *entry](sctx, slotMembers),
		list:    linkedlist.NewLinkedList(sctx, slotHead, slotTail, slotSize),
	}
}

// Get returns the member or nil if the account is not enrolled.
func (s *Service) Get(account pez.Address) (*Member, error) {
	ok, err := s.members.Exists(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get member")
	}
	if !ok {
		return nil, nil
	}
	e, err := s.members.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get member")
	}
	c, err := e.Category.category()
	if err != nil {
		return nil, err
	}
	return &Member{Account: account, Category: c, JoinedEra: e.JoinedEra}, nil
}

func (s *Service) Contains(account pez.Address) (bool, error) {
	return s.members.Exists(account)
}

// Add enrolls a new account. The caller checks it is not already present.
func (s *Service) Add(account pez.Address, c Category, era uint32) error {
	env, err := toEnvelope(c)
	if err != nil {
		return err
	}
	if err := s.members.Set(account, &entry{Category: env, JoinedEra: era}); err != nil {
		return errors.Wrap(err, "failed to set member")
	}
	return errors.Wrap(s.list.Add(account), "failed to link member")
}

// SetCategory overwrites the category of an existing member.
func (s *Service) SetCategory(account pez.Address, c Category) error {
	e, err := s.members.Get(account)
	if err != nil {
		return errors.Wrap(err, "failed to get member")
	}
	if e.Category == nil {
		return errors.New("member not found")
	}
	env, err := toEnvelope(c)
	if err != nil {
		return err
	}
	e.Category = env
	return errors.Wrap(s.members.Set(account, e), "failed to set member")
}

// Remove unlinks and deletes the member.
func (s *Service) Remove(account pez.Address) error {
	if err := s.list.Remove(account); err != nil {
		return errors.Wrap(err, "failed to unlink member")
	}
	s.members.Delete(account)
	return nil
}

func (s *Service) Size() (uint32, error) {
	return s.list.Len()
}

// Iter visits members in enrollment order until the callback returns false or an error.
func (s *Service) Iter(cb func(*Member) (bool, error)) error {
	return s.list.Iter(func(account pez.Address) (bool, error) {
		m, err := s.Get(account)
		if err != nil {
			return false, err
		}
		if m == nil {
			return false, errors.Errorf("linked member %v has no entry", account)
		}
		return cb(m)
	})
}

// List returns all members in enrollment order.
func (s *Service) List() ([]*Member, error) {
	var out []*Member
	err := s.Iter(func(m *Member) (bool, error) {
		out = append(out, m)
		return true, nil
	})
	return out, err
}
