package storage

import (
	"context"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
)

var bucketScenarios = []byte("scenarios")

// Compile-time interface check.
var _ domain.ScenarioStore = (*BoltStore)(nil)

// BoltStore keeps scenarios in a single bbolt file, one JSON value per
// scenario keyed by ID.
type BoltStore struct {
	db  *bolt.DB
	log *logger.Logger
}

// NewBoltStore opens (or creates) the database at path.
func NewBoltStore(path string, log *logger.Logger) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening scenario db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketScenarios); err != nil {
			return fmt.Errorf("creating bucket %s: %w", bucketScenarios, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("opened scenario db at %s", path)
	return &BoltStore{db: db, log: log}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save upserts a scenario.
func (s *BoltStore) Save(ctx context.Context, sc *domain.Scenario) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encoding scenario %s: %w", sc.ID, err)
	}
	s.log.Debug("saving scenario %s (recipe=%s)", sc.ID, sc.Input.RecipeID)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketScenarios).Put([]byte(sc.ID), data)
	})
}

// Load retrieves a scenario by ID.
func (s *BoltStore) Load(ctx context.Context, id string) (*domain.Scenario, error) {
	var sc domain.Scenario
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketScenarios).Get([]byte(id))
		if data == nil {
			return domain.ErrNotFound
		}
		return json.Unmarshal(data, &sc)
	})
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// Delete removes a scenario by ID.
func (s *BoltStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScenarios)
		if b.Get([]byte(id)) == nil {
			return domain.ErrNotFound
		}
		s.log.Debug("deleted scenario %s", id)
		return b.Delete([]byte(id))
	})
}

// List returns all scenarios, oldest first.
func (s *BoltStore) List(ctx context.Context) ([]*domain.Scenario, error) {
	var out []*domain.Scenario
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketScenarios).ForEach(func(k, v []byte) error {
			var sc domain.Scenario
			if err := json.Unmarshal(v, &sc); err != nil {
				return fmt.Errorf("decoding scenario %s: %w", k, err)
			}
			out = append(out, &sc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortScenarios(out)
	return out, nil
}
