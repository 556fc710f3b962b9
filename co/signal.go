// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter yields the channel to wait on for the next broadcast.
type Waiter interface {
	C() <-chan struct{}
}

// Signal announces an event to any number of waiting goroutines.
// Unlike sync.Cond it is channel based, so waiting composes with select.
type Signal struct {
	l  sync.Mutex
	ch chan struct{}
}

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes every waiter.
func (s *Signal) Broadcast() {
	s.l.Lock()
	defer s.l.Unlock()

	close(s.current())
	s.ch = make(chan struct{})
}

// NewWaiter returns a Waiter. Each call to C hands out the channel armed
// after the previous one fired, so a loop over C observes every broadcast
// that happens after the waiter was created.
func (s *Signal) NewWaiter() Waiter {
	s.l.Lock()
	ref := s.current()
	s.l.Unlock()

	return waiterFunc(func() <-chan struct{} {
		ch := ref

		s.l.Lock()
		ref = s.current()
		s.l.Unlock()

		return ch
	})
}

type waiterFunc func() <-chan struct{}

func (w waiterFunc) C() <-chan struct{} {
	return w()
}
