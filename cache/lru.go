// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a typed, size bounded cache over golang-lru that counts hits and misses.
type LRU[K comparable, V any] struct {
	cache *lru.Cache
	stats Stats
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: cache}, nil
}

func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.cache.Get(key); ok {
		l.stats.Hit()
		return v.(V), true
	}
	l.stats.Miss()
	var zero V
	return zero, false
}

func (l *LRU[K, V]) Add(key K, value V) {
	l.cache.Add(key, value)
}

func (l *LRU[K, V]) Remove(key K) {
	l.cache.Remove(key)
}

func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// Stats returns the hit/miss counters of the cache.
func (l *LRU[K, V]) Stats() *Stats {
	return &l.stats
}
