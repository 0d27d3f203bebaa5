package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// BlobStore persists the rule configuration as one opaque value under a key.
// Get returns (nil, nil) when nothing has been saved yet.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store keeps the live RuleConfig and its persisted copy in step. Readers
// always observe a complete config; Save replaces both copies wholesale.
type Store struct {
	blobs BlobStore
	key   string
	log   zerolog.Logger

	mu   sync.Mutex // serializes Save
	live atomic.Pointer[RuleConfig]
}

func NewStore(blobs BlobStore, key string, log zerolog.Logger) *Store {
	s := &Store{blobs: blobs, key: key, log: log}
	def := DefaultRuleConfig()
	s.live.Store(&def)
	return s
}

// Current returns a copy of the live configuration.
func (s *Store) Current() RuleConfig {
	return *s.live.Load()
}

// Load replaces the live config with the persisted one. A missing blob keeps
// the defaults; an unreadable or invalid blob is logged and also falls back
// to defaults, so a schema change never stops startup.
func (s *Store) Load(ctx context.Context) (RuleConfig, error) {
	raw, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return s.Current(), fmt.Errorf("load rules: %w", err)
	}
	cfg := DefaultRuleConfig()
	if raw == nil {
		s.live.Store(&cfg)
		return cfg, nil
	}
	// decode over defaults so fields missing from old blobs keep a sane value
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("persisted rules unreadable, using defaults")
		cfg = DefaultRuleConfig()
	} else if err := cfg.Validate(); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("persisted rules invalid, using defaults")
		cfg = DefaultRuleConfig()
	}
	s.live.Store(&cfg)
	return cfg, nil
}

// Save validates cfg, persists it and then publishes it as the live copy.
// On any error neither copy changes.
func (s *Store) Save(ctx context.Context, cfg RuleConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.blobs.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	s.live.Store(&cfg)
	s.log.Info().Str("key", s.key).Msg("business rules updated")
	return nil
}
