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

// Event is emitted by successful pool operations.
type Event interface {
	Name() string
}

type Joined struct {
	Account  pez.Address           `json:"account"`
	Category membership.Descriptor `json:"category"`
}

type Left struct {
	Account pez.Address `json:"account"`
}

type CategoryUpdated struct {
	Account  pez.Address           `json:"account"`
	Category membership.Descriptor `json:"category"`
}

type PerformanceUpdated struct {
	Account pez.Address        `json:"account"`
	Record  performance.Record `json:"record"`
}

type EraStarted struct {
	Era           uint32        `json:"era"`
	Block         uint32        `json:"block"`
	Stake         []pez.Address `json:"stake"`
	Parliamentary []pez.Address `json:"parliamentary"`
	Merit         []pez.Address `json:"merit"`
}

type EraLengthSet struct {
	Length uint32 `json:"length"`
}

type ManagerAdded struct {
	Account pez.Address `json:"account"`
}

type ManagerRemoved struct {
	Account pez.Address `json:"account"`
}

// RotationFailed is emitted when the automatic era hook could not rotate.
type RotationFailed struct {
	Block  uint32 `json:"block"`
	Reason string `json:"reason"`
}

func (Joined) Name() string             { return "Joined" }
func (Left) Name() string               { return "Left" }
func (CategoryUpdated) Name() string    { return "CategoryUpdated" }
func (PerformanceUpdated) Name() string { return "PerformanceUpdated" }
func (EraStarted) Name() string         { return "EraStarted" }
func (EraLengthSet) Name() string       { return "EraLengthSet" }
func (ManagerAdded) Name() string       { return "ManagerAdded" }
func (ManagerRemoved) Name() string     { return "ManagerRemoved" }
func (RotationFailed) Name() string     { return "RotationFailed" }

// Emitter receives events after the emitting operation succeeded.
type Emitter interface {
	Emit(Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

func (f EmitterFunc) Emit(e Event) { f(e) }

// Recorder is an Emitter collecting events in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) { r.Events = append(r.Events, e) }

// Reset returns the recorded events and clears the recorder.
func (r *Recorder) Reset() []Event {
	out := r.Events
	r.Events = nil
	return out
}
