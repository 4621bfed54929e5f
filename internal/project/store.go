// Package project keeps the user's funding projects in a key-value store.
package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexZinkM/scf-launchpad/internal/model"
	"github.com/AlexZinkM/scf-launchpad/internal/storage"
)

// StorageKey is the key the project list is persisted under.
const StorageKey = "blend_scf_projects"

// Store is the local project store. The whole list lives under one key as a JSON array.
type Store struct {
	kv  storage.KV
	log *zap.SugaredLogger
	now func() time.Time
}

func NewStore(kv storage.KV, log *zap.SugaredLogger) *Store {
	return &Store{kv: kv, log: log.Named("project-store"), now: time.Now}
}

// Save appends p and returns it with its id and creation time filled in.
// Duplicates are kept; ids are generated when empty.
func (s *Store) Save(ctx context.Context, p model.StoredProject) (model.StoredProject, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == "" {
		p.CreatedAt = s.now().UTC().Format(time.RFC3339)
	}

	err := s.kv.Update(ctx, StorageKey, func(current []byte) ([]byte, error) {
		projects := s.decode(current)
		return json.Marshal(append(projects, p))
	})
	if err != nil {
		return model.StoredProject{}, fmt.Errorf("failed to save project: %w", err)
	}
	s.log.Infow("project saved", "id", p.ID, "name", p.Name)
	return p, nil
}

// List returns all projects in insertion order. A missing or corrupt list reads as empty.
func (s *Store) List(ctx context.Context) ([]model.StoredProject, error) {
	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []model.StoredProject{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	return s.decode(raw), nil
}

// Get returns the first project with id.
func (s *Store) Get(ctx context.Context, id string) (model.StoredProject, bool, error) {
	projects, err := s.List(ctx)
	if err != nil {
		return model.StoredProject{}, false, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, true, nil
		}
	}
	return model.StoredProject{}, false, nil
}

// Remove deletes every project with id. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	removed := 0
	err := s.kv.Update(ctx, StorageKey, func(current []byte) ([]byte, error) {
		projects := s.decode(current)
		kept := projects[:0]
		for _, p := range projects {
			if p.ID == id {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		return json.Marshal(kept)
	})
	if err != nil {
		return fmt.Errorf("failed to remove project: %w", err)
	}
	if removed > 0 {
		s.log.Infow("project removed", "id", id, "count", removed)
	}
	return nil
}

func (s *Store) decode(raw []byte) []model.StoredProject {
	projects := []model.StoredProject{}
	if len(raw) == 0 {
		return projects
	}
	if err := json.Unmarshal(raw, &projects); err != nil {
		s.log.Warnw("stored project list is corrupt, treating as empty", "error", err)
		return []model.StoredProject{}
	}
	return projects
}
