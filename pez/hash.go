// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pez

import (
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

var hasherPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Blake2b is blake2b-256 over the concatenation of data.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn is blake2b-256 over everything fn writes.
func Blake2bFn(fn func(w io.Writer)) (out Bytes32) {
	h := hasherPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()
	fn(h)
	h.Sum(out[:0])
	return
}
