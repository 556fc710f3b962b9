// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package linkedlist

import (
	"github.com/pkg/errors"

	"github.com/vechain/valpool/builtin/solidity"
	"github.com/vechain/valpool/pez"
)

// LinkedList is a doubly linked list of addresses kept in contract storage.
// It gives the pool a deterministic insertion-ordered iteration over members.
type LinkedList struct {
	head  *solidity.Address
	tail  *solidity.Address
	count *solidity.Uint32
	next  *solidity.Mapping[pez.Address, pez.Address]
	prev  *solidity.Mapping[pez.Address, pez.Address]
}

func NewLinkedList(sctx *solidity.Context, headPos, tailPos, countPos pez.Bytes32) *LinkedList {
	return &LinkedList{
		head:  solidity.NewAddress(sctx, headPos),
		tail:  solidity.NewAddress(sctx, tailPos),
		count: solidity.NewUint32(sctx, countPos),
		next:  solidity.NewMapping[pez.Address, pez.Address](sctx, headPos),
		prev:  solidity.NewMapping[pez.Address, pez.Address](sctx, tailPos),
	}
}

func (l *LinkedList) setPointer(m *solidity.Mapping[pez.Address, pez.Address], key, value pez.Address) error {
	if value.IsZero() {
		m.Delete(key)
		return nil
	}
	return m.Set(key, value)
}

// Add appends an address to the end of the list.
func (l *LinkedList) Add(address pez.Address) error {
	if address.IsZero() {
		return errors.New("zero address")
	}
	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		l.head.Set(&address)
		l.tail.Set(&address)
		return l.count.Add(1)
	}

	if err := l.setPointer(l.next, oldTail, address); err != nil {
		return err
	}
	if err := l.setPointer(l.prev, address, oldTail); err != nil {
		return err
	}
	l.tail.Set(&address)

	return l.count.Add(1)
}

// Remove unlinks an address from anywhere in the list. Removing an absent address is a no-op.
func (l *LinkedList) Remove(address pez.Address) error {
	if address.IsZero() {
		return nil
	}

	prev, err := l.prev.Get(address)
	if err != nil {
		return err
	}
	next, err := l.next.Get(address)
	if err != nil {
		return err
	}

	head, err := l.head.Get()
	if err != nil {
		return err
	}
	if prev.IsZero() && head != address {
		return nil
	}

	if !prev.IsZero() {
		if err := l.setPointer(l.next, prev, next); err != nil {
			return err
		}
	} else {
		l.head.Set(&next)
	}

	if !next.IsZero() {
		if err := l.setPointer(l.prev, next, prev); err != nil {
			return err
		}
	} else {
		l.tail.Set(&prev)
	}

	l.next.Delete(address)
	l.prev.Delete(address)

	return l.count.Sub(1)
}

func (l *LinkedList) Len() (uint32, error) {
	return l.count.Get()
}

// Head returns the oldest address, or the zero address when empty.
func (l *LinkedList) Head() (pez.Address, error) {
	return l.head.Get()
}

// Next returns the successor address, or the zero address at the end.
func (l *LinkedList) Next(address pez.Address) (pez.Address, error) {
	return l.next.Get(address)
}

// Iter walks the list in insertion order until the callback errors or returns false.
func (l *LinkedList) Iter(callback func(pez.Address) (bool, error)) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		next, err := l.next.Get(ptr)
		if err != nil {
			return err
		}
		cont, err := callback(ptr)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
		ptr = next
	}
	return nil
}

// Slice collects every address in insertion order.
func (l *LinkedList) Slice() ([]pez.Address, error) {
	var out []pez.Address
	err := l.Iter(func(addr pez.Address) (bool, error) {
		out = append(out, addr)
		return true, nil
	})
	return out, err
}
