package statestore

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"storefront/internal/domain"
)

var boltBucket = []byte("client_state")

type boltRepo struct {
	db *bolt.DB
}

// NewBolt opens (or creates) a bbolt database at path and returns a Repository
// over a single bucket. Close must be called by the owner on shutdown.
func NewBolt(path string) (Repository, func() error, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return &boltRepo{db: db}, db.Close, nil
}

func (r *boltRepo) Load(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return domain.ErrNotFound
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *boltRepo) Save(_ context.Context, key string, value []byte) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	})
}

func (r *boltRepo) Delete(_ context.Context, key string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
}
