// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/vechain/valpool/kv"
)

// Stage abstracts changes on the contract storage.
type Stage struct {
	store   kv.Store
	changes map[storageKey][]byte
}

// Len returns the number of slots touched.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes in one atomic bulk.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	bulk := s.store.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.dbKey())
		} else {
			err = bulk.Put(k.dbKey(), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage commit")
		}
	}
	return errors.Wrap(bulk.Write(), "stage commit")
}
