// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package database wraps the leveldb key value store used by the event store.
package database

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the key is not in the database.
var ErrNotFound = lerrors.ErrNotFound

// IdealBatchSize is the amount of data a batch should accumulate before it is written.
const IdealBatchSize = 100 * 1024

// LDBDatabase is a wrapper for leveldb database with concurrent access.
type LDBDatabase struct {
	fn  string      // filename for reporting
	db  *leveldb.DB // LevelDB instance
	log *zap.Logger
}

// NewLDBDatabase opens the LevelDB database at the specified path, creating it if needed.
func NewLDBDatabase(file string, cache, handles int, logger *zap.Logger) (*LDBDatabase, error) {
	// Ensure we have some minimal caching and file guarantees
	cache = max(cache, 16)
	handles = max(handles, 16)
	logger = logger.With(zap.String("file", file))
	logger.Info("allocated cache and file handles",
		zap.Int("cache_size", cache),
		zap.Int("num_handles", handles))

	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(file, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	var corrupted *lerrors.ErrCorrupted
	if errors.As(err, &corrupted) {
		logger.Warn("recovering corrupted database", zap.Error(err))
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	return &LDBDatabase{fn: file, db: db, log: logger}, nil
}

// NewMemDatabase returns a memory database instance.
func NewMemDatabase() *LDBDatabase {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic("BUG: can't open in-memory leveldb: " + err.Error())
	}
	return &LDBDatabase{db: db, log: zap.NewNop()}
}

// Path returns the path to the database directory.
func (db *LDBDatabase) Path() string {
	return db.fn
}

// Put puts the given key / value to the database.
func (db *LDBDatabase) Put(key, value []byte) error {
	if err := db.db.Put(key, value, nil); err != nil {
		return fmt.Errorf("put value: %w", err)
	}
	return nil
}

// Has returns whether the db contains the key.
func (db *LDBDatabase) Has(key []byte) (bool, error) {
	has, err := db.db.Has(key, nil)
	if err != nil {
		return false, fmt.Errorf("check value: %w", err)
	}
	return has, nil
}

// Get returns the value for the key. ErrNotFound is returned (wrapped) if the key
// is not present.
func (db *LDBDatabase) Get(key []byte) ([]byte, error) {
	dat, err := db.db.Get(key, nil)
	if err != nil {
		return nil, fmt.Errorf("get value: %w", err)
	}
	return dat, nil
}

// Delete deletes the key from the database.
func (db *LDBDatabase) Delete(key []byte) error {
	if err := db.db.Delete(key, nil); err != nil {
		return fmt.Errorf("delete value: %w", err)
	}
	return nil
}

// Iterate calls fn for every key with the given prefix, in key order, until fn
// returns false. The key and value slices are only valid until fn returns.
func (db *LDBDatabase) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	it := db.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("iterate: %w", err)
	}
	return nil
}

// Batch accumulates writes to be applied atomically.
type Batch struct {
	b    leveldb.Batch
	size int
}

// NewBatch creates an empty write batch.
func (db *LDBDatabase) NewBatch() *Batch {
	return &Batch{}
}

// Put adds the key / value to the batch.
func (b *Batch) Put(key, value []byte) {
	b.b.Put(key, value)
	b.size += len(key) + len(value)
}

// ValueSize returns the amount of data in the batch.
func (b *Batch) ValueSize() int {
	return b.size
}

// Reset clears the batch for reuse.
func (b *Batch) Reset() {
	b.b.Reset()
	b.size = 0
}

// Write applies the batch to the database.
func (db *LDBDatabase) Write(b *Batch) error {
	if err := db.db.Write(&b.b, nil); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// Close closes database, flushing writes and denying all new write requests.
func (db *LDBDatabase) Close() {
	if err := db.db.Close(); err != nil {
		db.log.Error("failed to close database", zap.Error(err))
	} else {
		db.log.Info("database closed")
	}
}
