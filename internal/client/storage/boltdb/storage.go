package boltdb

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/marketdash/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketFallback = []byte("fallback")
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// Compile-time check that Storage implements FallbackStorage
var _ storage.FallbackStorage = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketFallback); err != nil {
			return fmt.Errorf("failed to create fallback bucket: %w", err)
		}
		return nil
	})
}

// update выполняет read-write транзакцию над fallback bucket
func (s *Storage) update(fn func(bucket *bbolt.Bucket) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFallback)
		if bucket == nil {
			return fmt.Errorf("fallback bucket not found")
		}
		return fn(bucket)
	})
	return mapErr(err)
}

// view выполняет read-only транзакцию над fallback bucket
func (s *Storage) view(fn func(bucket *bbolt.Bucket) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketFallback)
		if bucket == nil {
			return fmt.Errorf("fallback bucket not found")
		}
		return fn(bucket)
	})
	return mapErr(err)
}

// mapErr переводит ошибки bbolt в ошибки пакета storage
func mapErr(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return storage.ErrStorageClosed
	}
	return err
}
