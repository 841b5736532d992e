// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/clausecheck/core"
	"github.com/poiesic/clausecheck/storage"
)

// cache is the BadgerDB-backed report cache. Reports are stored as
// canonical JSON so a cache hit returns exactly the bytes a fresh run
// would produce.
type cache struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.ReportCache = (*cache)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// NewCache opens a persistent report cache at the given directory,
// creating it if needed.
func NewCache(filePath string) (storage.ReportCache, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(filePath, 0755); err != nil {
			return nil, err
		}
		info, err = os.Stat(filePath)
		if err != nil {
			return nil, err
		}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filePath)
	}

	return open(badger.DefaultOptions(filePath))
}

// NewMemoryCache opens an in-memory report cache for tests.
func NewMemoryCache() (storage.ReportCache, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (storage.ReportCache, error) {
	logger := slog.Default().With("component", "report-cache")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &cache{db: db, logger: logger}, nil
}

func (c *cache) Get(ctx context.Context, key storage.CacheKey) (*core.ComplianceReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.db.IsClosed() {
		return nil, storage.ErrClosed
	}

	var report core.ComplianceReport
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(cacheKeyBytes(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &report)
		})
	})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (c *cache) Put(ctx context.Context, key storage.CacheKey, report *core.ComplianceReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.db.IsClosed() {
		return storage.ErrClosed
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(cacheKeyBytes(key), data)
	})
}

func (c *cache) Close() error {
	return c.db.Close()
}

func cacheKeyBytes(key storage.CacheKey) []byte {
	return []byte(fmt.Sprintf("report:%s:%016x", key.CorpusVersion, uint64(key.DocumentHash)))
}
