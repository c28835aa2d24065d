package store

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/prize-wheel/audio"
	"github.com/lixenwraith/prize-wheel/constants"
)

// AudioPrefs are the persisted sound settings
type AudioPrefs struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0..1
}

// DefaultAudioPrefs returns enabled at 60% volume
func DefaultAudioPrefs() AudioPrefs {
	return AudioPrefs{Enabled: constants.DefaultAudioEnabled, Volume: constants.DefaultAudioVolume}
}

// AudioStore owns the audio preferences
type AudioStore struct {
	mu      sync.Mutex
	backend Backend
	prefs   AudioPrefs
	subs    subscribers[AudioPrefs]
}

// OpenAudio loads preferences from backend; fields missing from the document keep defaults
func OpenAudio(backend Backend, defaults AudioPrefs) *AudioStore {
	defaults.Volume = audio.ClampVolume(defaults.Volume)
	s := &AudioStore{backend: backend, prefs: defaults}

	data, err := backend.Load(constants.AudioStoreKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		log.Printf("store: load audio prefs: %v, using defaults", err)
	default:
		prefs := defaults
		if err := toml.Unmarshal(data, &prefs); err != nil {
			log.Printf("store: decode audio prefs: %v, using defaults", err)
			break
		}
		prefs.Volume = audio.ClampVolume(prefs.Volume)
		s.prefs = prefs
	}
	return s
}

// Prefs returns the current preferences
func (s *AudioStore) Prefs() AudioPrefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Set replaces both preferences; volume is clamped to [0, 1]
func (s *AudioStore) Set(prefs AudioPrefs) error {
	prefs.Volume = audio.ClampVolume(prefs.Volume)

	s.mu.Lock()
	s.prefs = prefs
	err := s.saveLocked()
	s.mu.Unlock()

	if err != nil {
		log.Printf("store: save audio prefs: %v", err)
	}
	s.subs.notify(prefs)
	return err
}

func (s *AudioStore) SetEnabled(enabled bool) error {
	p := s.Prefs()
	p.Enabled = enabled
	return s.Set(p)
}

func (s *AudioStore) SetVolume(volume float64) error {
	p := s.Prefs()
	p.Volume = volume
	return s.Set(p)
}

func (s *AudioStore) saveLocked() error {
	data, err := toml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("store: encode audio prefs: %w", err)
	}
	return s.backend.Save(constants.AudioStoreKey, data)
}

// Subscribe registers fn for preference changes; the returned func removes it
func (s *AudioStore) Subscribe(fn func(AudioPrefs)) func() {
	return s.subs.add(fn)
}
