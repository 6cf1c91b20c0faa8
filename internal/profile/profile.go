// Package profile owns the persisted user record. Every mutation goes
// through Store.Update, which applies the change and persists the whole
// structure; partial writes do not exist.
package profile

import (
	"encoding/json"

	"autc/internal/agents"
	"autc/internal/models"
	"autc/internal/storage"

	"go.uber.org/zap"
)

// StoreKey is the single KV key the profile lives under.
const StoreKey = "autc_user"

// Defaults is the first-run profile. The technology/education usage
// baseline seeds the favorite-agent computation.
func Defaults() models.UserProfile {
	return models.UserProfile{
		Name: "Traveler",
		Role: "Task Commander",
		Bio:  "Exploring the digital frontier of the AUTC system.",
		Stats: models.UsageStats{
			FavoriteAgent: agents.Technology,
			AgentUsage: map[agents.ID]int{
				agents.Technology: 5,
				agents.Education:  2,
			},
		},
		Preferences: models.Preferences{
			DataTraining: true,
		},
		SavedSnippets:  []models.SavedSnippet{},
		ActiveHistory:  []models.Message{},
		AgentHistories: map[agents.ID][]models.Message{},
	}
}

type Store struct {
	kv      storage.KV
	log     *zap.Logger
	current models.UserProfile
}

// NewStore loads the persisted profile through the merge-on-load path and
// returns a store ready for updates.
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log}
	s.current = s.load()
	return s
}

// Current returns the in-memory profile. The in-memory copy is
// authoritative for the session even when persistence fails.
func (s *Store) Current() models.UserProfile {
	return s.current
}

// Update applies the mutation, persists the full record, and returns the
// new state. Persistence failure is logged and swallowed; the mutation
// still takes effect in memory.
func (s *Store) Update(mutate func(*models.UserProfile)) models.UserProfile {
	mutate(&s.current)
	s.persist()
	return s.current
}

// load reads and merges the persisted record onto fresh defaults. Absence
// or a parse failure yields plain defaults; parse failures are logged,
// never raised.
func (s *Store) load() models.UserProfile {
	def := Defaults()

	raw, ok, err := s.kv.Get(StoreKey)
	if err != nil {
		s.log.Warn("profile read failed, starting from defaults", zap.Error(err))
		return def
	}
	if !ok {
		return def
	}

	// Unmarshaling into the defaults copy keeps default values for every
	// field the persisted record does not carry.
	merged := def
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		s.log.Warn("profile parse failed, starting from defaults", zap.Error(err))
		return def
	}
	ensureShape(&merged)
	return merged
}

// ensureShape restores collections that old persisted records (or explicit
// nulls) may have dropped. agentHistories in particular predates some
// saved data.
func ensureShape(p *models.UserProfile) {
	if p.AgentHistories == nil {
		p.AgentHistories = map[agents.ID][]models.Message{}
	}
	if p.Stats.AgentUsage == nil {
		p.Stats.AgentUsage = map[agents.ID]int{}
	}
	if p.SavedSnippets == nil {
		p.SavedSnippets = []models.SavedSnippet{}
	}
	if p.ActiveHistory == nil {
		p.ActiveHistory = []models.Message{}
	}
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.current)
	if err != nil {
		s.log.Error("profile marshal failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(StoreKey, string(raw)); err != nil {
		s.log.Warn("profile persist failed, continuing in memory", zap.Error(err))
	}
}
