// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the node keeps producing blocks.
package health

import (
	"sync"
	"time"

	"github.com/vechain/valpool/pez"
)

// tolerated block intervals without a new block
const staleIntervals = 3

type BlockIngestion struct {
	Number    uint32       `json:"number"`
	ID        *pez.Bytes32 `json:"id"`
	Timestamp *time.Time   `json:"timestamp"`
}

type Status struct {
	Healthy        bool            `json:"healthy"`
	BlockIngestion *BlockIngestion `json:"blockIngestion"`
	Bootstrapped   bool            `json:"bootstrapped"`
}

type Health struct {
	lock          sync.RWMutex
	blockInterval time.Duration
	newBlock      time.Time
	number        uint32
	blockID       *pez.Bytes32
	bootstrapped  bool
}

func New(blockInterval time.Duration) *Health {
	return &Health{blockInterval: blockInterval}
}

// NewBlock records a committed block.
func (h *Health) NewBlock(number uint32, id pez.Bytes32) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.newBlock = time.Now()
	h.number = number
	h.blockID = &id
}

func (h *Health) BootstrapStatus(bootstrapped bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bootstrapped = bootstrapped
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	ingestion := &BlockIngestion{Number: h.number, ID: h.blockID}
	if h.blockID != nil {
		ts := h.newBlock
		ingestion.Timestamp = &ts
	}

	healthy := h.bootstrapped &&
		h.blockID != nil &&
		time.Since(h.newBlock) <= staleIntervals*h.blockInterval

	return &Status{
		Healthy:        healthy,
		BlockIngestion: ingestion,
		Bootstrapped:   h.bootstrapped,
	}
}
