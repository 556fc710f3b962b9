// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/vechain/valpool/builtin/pool"
	"github.com/vechain/valpool/builtin/pool/reverts"
	"github.com/vechain/valpool/eventdb"
	"github.com/vechain/valpool/pez"
)

func isRevert(err error) bool {
	return reverts.IsRevertErr(err)
}

// subject returns the account an event is about, if any.
func subject(ev pool.Event) *pez.Address {
	var addr pez.Address
	switch e := ev.(type) {
	case pool.Joined:
		addr = e.Account
	case pool.Left:
		addr = e.Account
	case pool.CategoryUpdated:
		addr = e.Account
	case pool.PerformanceUpdated:
		addr = e.Account
	case pool.ManagerAdded:
		addr = e.Account
	case pool.ManagerRemoved:
		addr = e.Account
	default:
		return nil
	}
	return &addr
}

func toRecords(events []pool.Event) ([]*eventdb.Event, error) {
	records := make([]*eventdb.Event, 0, len(events))
	for _, ev := range events {
		rec, err := eventdb.NewEvent(ev.Name(), subject(ev), ev)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
