// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/valpool/co"
)

func TestSignal_BroadcastBeforeWaiter(t *testing.T) {
	var sig co.Signal
	sig.Broadcast()

	w := sig.NewWaiter()
	select {
	case <-w.C():
		t.Fatal("waiter created after broadcast must not fire")
	default:
	}
}

func TestSignal_BroadcastAfterWaiters(t *testing.T) {
	var sig co.Signal

	var ws []co.Waiter
	for range 10 {
		ws = append(ws, sig.NewWaiter())
	}
	sig.Broadcast()

	for _, w := range ws {
		<-w.C()
	}
}

func TestSignal_Loop(t *testing.T) {
	var sig co.Signal
	w := sig.NewWaiter()

	sig.Broadcast()
	<-w.C()

	select {
	case <-w.C():
		t.Fatal("second wait must block until the next broadcast")
	default:
	}
}

func TestGoes(t *testing.T) {
	var (
		goes co.Goes
		n    atomic.Int32
	)
	for range 5 {
		goes.Go(func() { n.Add(1) })
	}
	select {
	case <-goes.Done():
	case <-time.After(time.Second):
		t.Fatal("goroutines did not finish")
	}
	goes.Wait()
	assert.Equal(t, int32(5), n.Load())
}
