// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket namespaces keys of a store with a fixed prefix.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(k)), b...), k...)
}

// NewStore returns a view of src restricted to the bucket. Keys seen through
// the view carry no prefix.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketPutter{b, src}, src}
}

type bucketPutter struct {
	b   Bucket
	dst Putter
}

func (p bucketPutter) Put(key, val []byte) error { return p.dst.Put(p.b.key(key), val) }
func (p bucketPutter) Delete(key []byte) error   { return p.dst.Delete(p.b.key(key)) }

type bucketStore struct {
	bucketPutter
	src Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error) { return s.src.Get(s.b.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)   { return s.src.Has(s.b.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool      { return s.src.IsNotFound(err) }

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &bucketBulk{bucketPutter{s.b, bulk}, bulk}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	r.Start = s.b.key(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(s.b)).Limit
	} else {
		r.Limit = s.b.key(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(r), len(s.b)}
}

type bucketBulk struct {
	bucketPutter
	bulk Bulk
}

func (b *bucketBulk) Write() error { return b.bulk.Write() }

type bucketIterator struct {
	Iterator
	prefix int
}

func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefix:]
}
