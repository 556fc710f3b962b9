// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb implements kv.Store on goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/valpool/kv"
)

var _ kv.Store = (*LevelDB)(nil)

const minCacheMB = 16

// Options for New. CacheSize is in megabytes.
type Options struct {
	CacheSize              int
	OpenFilesCacheCapacity int
}

type LevelDB struct {
	db *leveldb.DB
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "open level db storage [%v]", path)
	}
	return open(stg, opts)
}

func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	opts.CacheSize = max(opts.CacheSize, minCacheMB)
	opts.OpenFilesCacheCapacity = max(opts.OpenFilesCacheCapacity, 16)

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: opts.OpenFilesCacheCapacity,
		BlockCacheCapacity:     opts.CacheSize / 2 * opt.MiB,
		WriteBuffer:            opts.CacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db}, nil
}

func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get fails with an IsNotFound error for a missing key.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) { return ldb.db.Get(key, nil) }
func (ldb *LevelDB) Has(key []byte) (bool, error)   { return ldb.db.Has(key, nil) }
func (ldb *LevelDB) Put(key, val []byte) error      { return ldb.db.Put(key, val, nil) }
func (ldb *LevelDB) Delete(key []byte) error        { return ldb.db.Delete(key, nil) }

func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// Property returns a leveldb property such as "leveldb.stats".
func (ldb *LevelDB) Property(name string) (string, error) {
	return ldb.db.GetProperty(name)
}

// Bulk buffers writes. Nothing is visible until Write, which applies them atomically.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &bulk{db: ldb.db, batch: new(leveldb.Batch)}
}

func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

type bulk struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *bulk) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *bulk) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *bulk) Len() int {
	return b.batch.Len()
}

// Write applies the buffered ops and empties the bulk.
func (b *bulk) Write() error {
	if err := b.db.Write(b.batch, nil); err != nil {
		return err
	}
	b.batch.Reset()
	return nil
}
