package store

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/prize-wheel/constants"
)

// PoolState is the persisted prize pool: raw label text plus the multiset of won labels
type PoolState struct {
	RawInput      string   `toml:"raw_input"`
	RemovedLabels []string `toml:"removed_labels"`
}

func (s PoolState) clone() PoolState {
	return PoolState{
		RawInput:      s.RawInput,
		RemovedLabels: append([]string{}, s.RemovedLabels...),
	}
}

// poolDocument is the on-disk envelope; Prizes only appears in version 1 documents
type poolDocument struct {
	Version int           `toml:"version"`
	State   PoolState     `toml:"state"`
	Prizes  []legacyPrize `toml:"prizes,omitempty"`
}

type legacyPrize struct {
	ID      string `toml:"id,omitempty"`
	Label   string `toml:"label"`
	Removed bool   `toml:"removed"`
}

// PoolStore owns the prize pool state and writes it through to a Backend on every mutation
type PoolStore struct {
	mu      sync.Mutex
	backend Backend
	state   PoolState
	subs    subscribers[PoolState]
}

// OpenPool loads the pool from backend, migrating version 1 documents.
// A missing document starts from defaultRaw; an unreadable one starts empty.
func OpenPool(backend Backend, defaultRaw string) *PoolStore {
	s := &PoolStore{backend: backend}
	s.state = s.load(defaultRaw)
	return s
}

func (s *PoolStore) load(defaultRaw string) PoolState {
	defaults := PoolState{RawInput: defaultRaw, RemovedLabels: []string{}}

	data, err := s.backend.Load(constants.PoolStoreKey)
	if errors.Is(err, ErrNotFound) {
		return defaults
	}
	if err != nil {
		log.Printf("store: load pool: %v, using defaults", err)
		return defaults
	}

	var doc poolDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		log.Printf("store: decode pool: %v, using defaults", err)
		return defaults
	}

	state := doc.State.clone()
	if doc.Version < constants.PoolStoreVersion {
		if len(doc.Prizes) > 0 {
			state = migrateLegacyPrizes(doc.Prizes)
		}
		log.Printf("store: migrated pool document from version %d", doc.Version)
		if err := s.saveLocked(state); err != nil {
			log.Printf("store: rewrite migrated pool: %v", err)
		}
	}
	return state
}

// migrateLegacyPrizes converts per-prize records into raw text and removed labels; unlabeled records are dropped
func migrateLegacyPrizes(prizes []legacyPrize) PoolState {
	labels := make([]string, 0, len(prizes))
	removed := make([]string, 0)
	for _, p := range prizes {
		if p.Label == "" {
			continue
		}
		labels = append(labels, p.Label)
		if p.Removed {
			removed = append(removed, p.Label)
		}
	}
	return PoolState{RawInput: strings.Join(labels, " # "), RemovedLabels: removed}
}

func (s *PoolStore) saveLocked(state PoolState) error {
	data, err := toml.Marshal(poolDocument{Version: constants.PoolStoreVersion, State: state})
	if err != nil {
		return fmt.Errorf("store: encode pool: %w", err)
	}
	return s.backend.Save(constants.PoolStoreKey, data)
}

// update applies fn, persists and notifies; the in-memory state changes even if the save fails
func (s *PoolStore) update(fn func(*PoolState)) error {
	s.mu.Lock()
	fn(&s.state)
	state := s.state.clone()
	err := s.saveLocked(state)
	s.mu.Unlock()

	if err != nil {
		log.Printf("store: save pool: %v", err)
	}
	s.subs.notify(state)
	return err
}

// State returns a copy of the current pool state
func (s *PoolStore) State() PoolState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetRawInput replaces the pool text and clears all removals
func (s *PoolStore) SetRawInput(raw string) error {
	return s.update(func(st *PoolState) {
		st.RawInput = raw
		st.RemovedLabels = []string{}
	})
}

// ClearAll empties the pool
func (s *PoolStore) ClearAll() error {
	return s.update(func(st *PoolState) {
		st.RawInput = ""
		st.RemovedLabels = []string{}
	})
}

// AddRemovedLabel appends one occurrence of label to the removed multiset
func (s *PoolStore) AddRemovedLabel(label string) error {
	return s.update(func(st *PoolState) {
		st.RemovedLabels = append(st.RemovedLabels, label)
	})
}

// ClearRemoved restores every prize
func (s *PoolStore) ClearRemoved() error {
	return s.update(func(st *PoolState) {
		st.RemovedLabels = []string{}
	})
}

// Subscribe registers fn for state changes; the returned func removes it
func (s *PoolStore) Subscribe(fn func(PoolState)) func() {
	return s.subs.add(fn)
}
