// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package scores

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/vechain/valpool/cache"
	"github.com/vechain/valpool/pez"
)

// Cached memoizes a Provider per account. Callers must Invalidate an account
// after its upstream scores change.
type Cached struct {
	src   Provider
	cache *cache.LRU[pez.Address, Scores]

	lock sync.Mutex
	// bumped by every invalidation, a load that raced one is not cached
	generation uint64
}

func NewCached(src Provider, size int) (*Cached, error) {
	c, err := cache.NewLRU[pez.Address, Scores](size)
	if err != nil {
		return nil, err
	}
	return &Cached{src: src, cache: c}, nil
}

func (c *Cached) load(account pez.Address) Scores {
	if s, ok := c.cache.Get(account); ok {
		return s
	}

	c.lock.Lock()
	gen := c.generation
	c.lock.Unlock()

	s := Snapshot(c.src, account)

	c.lock.Lock()
	defer c.lock.Unlock()
	if c.generation == gen {
		c.cache.Add(account, s)
	}
	return s
}

func (c *Cached) Invalidate(account pez.Address) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.generation++
	c.cache.Remove(account)
}

// Set writes through to the source and drops the cached entry.
func (c *Cached) Set(account pez.Address, s Scores) error {
	w, ok := c.src.(Writer)
	if !ok {
		return ErrReadOnly
	}
	w.Set(account, s)
	c.Invalidate(account)
	return nil
}

func (c *Cached) Stats() *cache.Stats {
	return c.cache.Stats()
}

func (c *Cached) TrustScoreOf(account pez.Address) *uint256.Int {
	if t := c.load(account).Trust; t != nil {
		return t.Clone()
	}
	return new(uint256.Int)
}
func (c *Cached) RoleScoreOf(account pez.Address) uint32     { return c.load(account).Role }
func (c *Cached) ReferralCountOf(account pez.Address) uint32 { return c.load(account).Referral }
func (c *Cached) TrainingScoreOf(account pez.Address) uint32 { return c.load(account).Training }
