package database

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

var ErrNotFound = errors.New("key not found")

// DB is a thin wrapper over badger used for the store's event log.
type DB struct {
	db     *badger.DB
	logger logr.Logger
}

func NewDB(path string, logger logr.Logger) (*DB, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, apperrors.WrapStorage(err, fmt.Sprintf("create database directory %s", path))
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	// event records are small; keep the value log modest
	opts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.WrapStorage(err, fmt.Sprintf("open database %s", path))
	}

	logger.V(1).Info("opened database", "path", path)
	return &DB{db: db, logger: logger}, nil
}

func (d *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("key not found: %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.WrapStorage(err, fmt.Sprintf("get %s", key))
	}
	return value, nil
}

func (d *DB) update(operation, key string, fn func(*badger.Txn) error) error {
	if err := d.db.Update(fn); err != nil {
		return apperrors.WrapStorage(err, fmt.Sprintf("%s %s", operation, key))
	}
	return nil
}

func (d *DB) Set(key string, value []byte) error {
	return d.update("set", key, func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (d *DB) Delete(key string) error {
	return d.update("delete", key, func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// List returns every key/value pair under prefix.
func (d *DB) List(prefix string) (map[string][]byte, error) {
	results := make(map[string][]byte)
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			results[string(item.KeyCopy(nil))] = val
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapStorage(err, fmt.Sprintf("list %s", prefix))
	}
	return results, nil
}

func (d *DB) BatchSet(items map[string][]byte) error {
	wb := d.db.NewWriteBatch()
	defer wb.Cancel()

	for key, value := range items {
		if err := wb.Set([]byte(key), value); err != nil {
			return apperrors.WrapStorage(err, fmt.Sprintf("batch set %s", key))
		}
	}
	if err := wb.Flush(); err != nil {
		return apperrors.WrapStorage(err, "batch set flush")
	}
	return nil
}

func (d *DB) BatchDelete(keys []string) error {
	wb := d.db.NewWriteBatch()
	defer wb.Cancel()

	for _, key := range keys {
		if err := wb.Delete([]byte(key)); err != nil {
			d.logger.V(1).Info("failed to delete key in batch", "key", key, "error", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return apperrors.WrapStorage(err, "batch delete flush")
	}
	return nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// NewTestDB opens an in-memory database that is closed when the test ends.
func NewTestDB(t testing.TB) (*DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create test DB: %w", err)
	}
	testDB := &DB{db: db, logger: logr.Discard()}
	if t != nil {
		t.Cleanup(func() { testDB.Close() })
	}
	return testDB, nil
}
