package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/marketdash/internal/client/storage"
)

// Put stores value under key
func (s *Storage) Put(ctx context.Context, key string, value []byte) error {
	return s.update(func(bucket *bbolt.Bucket) error {
		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to put %q: %w", key, err)
		}
		return nil
	})
}

// Get retrieves stored value
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.view(func(bucket *bbolt.Bucket) error {
		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}

		// Значение валидно только внутри транзакции
		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Delete removes keys, missing keys are ignored
func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	return s.update(func(bucket *bbolt.Bucket) error {
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("failed to delete %q: %w", key, err)
			}
		}
		return nil
	})
}
