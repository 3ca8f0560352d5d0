package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/projectgallery/internal/db"
	"github.com/projectgallery/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertOutcome reports whether an upsert appended or replaced a record.
type UpsertOutcome string

// DeleteOutcome reports whether a delete removed anything.
type DeleteOutcome string

const (
	UpsertCreated UpsertOutcome = "created"
	UpsertUpdated UpsertOutcome = "updated"

	DeleteDeleted  DeleteOutcome = "deleted"
	DeleteNotFound DeleteOutcome = "not_found"
)

// ProjectStore keeps the whole project collection serialized as JSON in a
// single storage slot. Every mutation loads, changes and writes back the full
// list while holding the store lock.
type ProjectStore struct {
	db      *gorm.DB
	key     string
	metrics *metrics.Recorder
	mu      sync.Mutex
}

// NewProjectStore creates a ProjectStore bound to one slot key.
func NewProjectStore(gdb *gorm.DB, key string, recorder *metrics.Recorder) *ProjectStore {
	key = strings.TrimSpace(key)
	if key == "" {
		key = db.DefaultProjectsKey
	}
	return &ProjectStore{db: gdb, key: key, metrics: recorder}
}

// Key returns the slot key.
func (s *ProjectStore) Key() string {
	return s.key
}

// Load returns the stored collection. A missing slot, a read error or a
// malformed payload all yield an empty collection.
func (s *ProjectStore) Load() []db.Project {
	raw, found, err := s.readSlot()
	if err != nil {
		log.Printf("[store] read slot %q: %v", s.key, err)
		return []db.Project{}
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []db.Project{}
	}

	var projects []db.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		log.Printf("[store] slot %q holds malformed data, treating as empty: %v", s.key, err)
		return []db.Project{}
	}
	if projects == nil {
		return []db.Project{}
	}
	return projects
}

// Save replaces the stored collection.
func (s *ProjectStore) Save(projects []db.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(projects)
}

// Upsert replaces the record with the same id in place, or appends it.
func (s *ProjectStore) Upsert(project db.Project) (UpsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.Load()
	outcome := UpsertCreated
	index := indexOfProject(projects, project.ID.String())
	if index >= 0 {
		projects[index] = project
		outcome = UpsertUpdated
	} else {
		projects = append(projects, project)
	}

	if err := s.save(projects); err != nil {
		s.metrics.ObserveStore("upsert", "error")
		return "", err
	}
	s.metrics.ObserveStore("upsert", string(outcome))
	return outcome, nil
}

// DeleteByID removes every record whose id equals id. Nothing is written
// when no record matches.
func (s *ProjectStore) DeleteByID(id string) (DeleteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := s.Load()
	kept := make([]db.Project, 0, len(projects))
	for _, project := range projects {
		if project.ID.String() != id {
			kept = append(kept, project)
		}
	}

	if len(kept) == len(projects) {
		s.metrics.ObserveStore("delete", string(DeleteNotFound))
		return DeleteNotFound, nil
	}

	if err := s.save(kept); err != nil {
		s.metrics.ObserveStore("delete", "error")
		return "", err
	}
	s.metrics.ObserveStore("delete", string(DeleteDeleted))
	return DeleteDeleted, nil
}

// SeedIfEmpty writes seed when the slot is absent or holds an empty value.
// It reports whether the seed was written.
func (s *ProjectStore) SeedIfEmpty(seed []db.Project) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.readSlot()
	if err != nil {
		return false, err
	}
	if found && raw != "" {
		return false, nil
	}

	if err := s.save(seed); err != nil {
		return false, err
	}
	s.metrics.ObserveStore("seed", "seeded")
	return true, nil
}

func (s *ProjectStore) readSlot() (string, bool, error) {
	var slot db.StorageSlot
	if err := s.db.Where("key = ?", s.key).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load slot %s: %w", s.key, err)
	}
	return slot.Value, true, nil
}

func (s *ProjectStore) save(projects []db.Project) error {
	if projects == nil {
		projects = []db.Project{}
	}
	payload, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}

	slot := db.StorageSlot{Key: s.key, Value: string(payload)}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      slot.Value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&slot).Error; err != nil {
		return fmt.Errorf("save slot %s: %w", s.key, err)
	}
	return nil
}

func indexOfProject(projects []db.Project, id string) int {
	for i := range projects {
		if projects[i].ID.String() == id {
			return i
		}
	}
	return -1
}
