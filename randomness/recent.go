// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package randomness

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/vechain/valpool/pez"
)

// RecentHashes mixes the hashes of the most recent blocks. It is cheap and
// deterministic, but the last block author can bias it.
type RecentHashes struct {
	lock   sync.RWMutex
	ring   []pez.Bytes32
	latest uint32
}

func NewRecentHashes(size int) *RecentHashes {
	if size <= 0 {
		size = pez.RecentBlockHashes
	}
	return &RecentHashes{ring: make([]pez.Bytes32, size)}
}

// Feed stores the hash of block number.
func (r *RecentHashes) Feed(number uint32, hash pez.Bytes32) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.ring[int(number)%len(r.ring)] = hash
	if number > r.latest {
		r.latest = number
	}
}

func (r *RecentHashes) Random(subject []byte) (pez.Bytes32, uint32) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var idx [4]byte
	seed := pez.Blake2bFn(func(w io.Writer) {
		w.Write(subject)
		for i, h := range r.ring {
			binary.BigEndian.PutUint32(idx[:], uint32(i))
			w.Write(idx[:])
			w.Write(h[:])
		}
	})
	return seed, r.latest
}
