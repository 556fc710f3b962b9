// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"encoding/json"

	"github.com/vechain/valpool/pez"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Event is one archived pool event. Data is the JSON payload.
type Event struct {
	BlockNumber uint32          `json:"blockNumber"`
	Index       uint32          `json:"index"`
	Name        string          `json:"name"`
	Account     *pez.Address    `json:"account,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// NewEvent encodes payload as the event data.
func NewEvent(name string, account *pez.Address, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Name: name, Account: account, Data: data}, nil
}

type Range struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects archived events. Nil fields match everything.
type Filter struct {
	Range   *Range       `json:"range"`
	Name    string       `json:"name"`
	Account *pez.Address `json:"account"`
	Order   Order        `json:"order"`
	Options *Options     `json:"options"`
}
