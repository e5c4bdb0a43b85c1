// Package boltstore provides the built-in bolt-store plugin: a storage
// backend over a single BoltDB file.
package boltstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/boltdb/bolt"

	"github.com/kiosk404/animus/internal/animusd/service/plugin"
	"github.com/kiosk404/animus/internal/animusd/service/storage"
	"github.com/kiosk404/animus/pkg/utils/json"
)

const (
	PluginName    = "bolt-store"
	pluginVersion = "1.0.0"

	defaultFile = "animus.db"
)

var (
	bucketMessages = []byte("messages")
	bucketEntities = []byte("entities")
	bucketFacts    = []byte("facts")
)

// Factory creates the bolt-store plugin.
func Factory(args plugin.Args) (plugin.Plugin, error) {
	return &Store{
		Base: plugin.Base{
			PluginName:    PluginName,
			PluginVersion: pluginVersion,
			PluginType:    plugin.TypeStorage,
			Instance:      args.InstanceID(),
		},
		path: args.String("path", ""),
	}, nil
}

// Store implements storage.Provider on top of BoltDB.
type Store struct {
	plugin.Base

	path string
	db   *bolt.DB
}

func (s *Store) Init(_ context.Context, pctx *plugin.Context) error {
	path := s.path
	if path == "" {
		dataDir := "data"
		if pctx != nil && pctx.Config != nil {
			if d := pctx.Config.GetString("runtime.dataDir"); d != "" {
				dataDir = d
			}
		}
		path = filepath.Join(dataDir, defaultFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketMessages, bucketEntities, bucketFacts} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %q: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create buckets: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Destroy(_ context.Context) error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Ping(_ context.Context) error {
	if s.db == nil {
		return storage.ErrUnavailable
	}
	return nil
}

func (s *Store) SaveMessage(_ context.Context, rec *storage.MessageRecord) error {
	return s.put(bucketMessages, rec.ID, rec)
}

func (s *Store) SearchMessages(_ context.Context, query string, limit int) ([]*storage.MessageRecord, error) {
	var out []*storage.MessageRecord
	err := s.scan(bucketMessages, func(v []byte) (bool, error) {
		var rec storage.MessageRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return false, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		if query == "" || strings.Contains(strings.ToLower(rec.Content), strings.ToLower(query)) {
			out = append(out, &rec)
		}
		return limit > 0 && len(out) >= limit, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveEntity(_ context.Context, rec *storage.EntityRecord) error {
	return s.put(bucketEntities, rec.ID, rec)
}

func (s *Store) GetEntity(_ context.Context, id string) (*storage.EntityRecord, error) {
	if s.db == nil {
		return nil, storage.ErrUnavailable
	}
	var rec storage.EntityRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketEntities).Get([]byte(id))
		if data == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) SaveFact(_ context.Context, rec *storage.FactRecord) error {
	return s.put(bucketFacts, rec.ID, rec)
}

func (s *Store) SearchFacts(_ context.Context, query string, limit int) ([]*storage.FactRecord, error) {
	var out []*storage.FactRecord
	err := s.scan(bucketFacts, func(v []byte) (bool, error) {
		var rec storage.FactRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return false, fmt.Errorf("failed to unmarshal fact: %w", err)
		}
		if query == "" || strings.Contains(strings.ToLower(rec.Text), strings.ToLower(query)) {
			out = append(out, &rec)
		}
		return limit > 0 && len(out) >= limit, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) put(bucket []byte, key string, rec interface{}) error {
	if s.db == nil {
		return storage.ErrUnavailable
	}
	if key == "" {
		return fmt.Errorf("record id must not be empty")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// scan walks a bucket in key order until fn reports done.
func (s *Store) scan(bucket []byte, fn func(v []byte) (bool, error)) error {
	if s.db == nil {
		return storage.ErrUnavailable
	}
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			done, err := fn(v)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
		return nil
	})
}

var (
	_ plugin.Plugin    = (*Store)(nil)
	_ storage.Provider = (*Store)(nil)
)
