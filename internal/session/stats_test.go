package session

import (
	"testing"

	"autc/internal/agents"
	"autc/internal/models"
	"autc/internal/profile"
	"autc/internal/storage"

	"github.com/stretchr/testify/assert"
)

func newStatsManager(t *testing.T, usage map[agents.ID]int, fav agents.ID) (*Manager, *profile.Store) {
	t.Helper()
	store := profile.NewStore(storage.NewMemory(), nil)
	store.Update(func(p *models.UserProfile) {
		p.Stats.AgentUsage = usage
		p.Stats.FavoriteAgent = fav
	})
	return NewManager(store), store
}

func TestRecordCompletionCounters(t *testing.T) {
	m, store := newStatsManager(t, map[agents.ID]int{}, agents.Technology)

	m.RecordCompletion(agents.Science)
	m.RecordCompletion(agents.Science)
	m.RecordCompletion(agents.Health)

	stats := store.Current().Stats
	assert.Equal(t, 3, stats.TasksCompleted)
	assert.Equal(t, 2, stats.AgentUsage[agents.Science])
	assert.Equal(t, 1, stats.AgentUsage[agents.Health])
}

func TestFavoriteFollowsStrictMax(t *testing.T) {
	m, store := newStatsManager(t, map[agents.ID]int{
		agents.Science:    3,
		agents.Technology: 4,
	}, agents.Science)

	m.RecordCompletion(agents.Technology)
	assert.Equal(t, agents.Technology, store.Current().Stats.FavoriteAgent)
}

func TestFavoriteTieKeepsLeader(t *testing.T) {
	// Science holds the lead at 5; technology increments to tie it. The
	// tie must not steal the favorite.
	m, store := newStatsManager(t, map[agents.ID]int{
		agents.Science:    5,
		agents.Technology: 4,
	}, agents.Science)

	m.RecordCompletion(agents.Technology)

	stats := store.Current().Stats
	assert.Equal(t, 5, stats.AgentUsage[agents.Technology])
	assert.Equal(t, agents.Science, stats.FavoriteAgent)
}

func TestFavoriteIsAlwaysAMaxHolder(t *testing.T) {
	m, store := newStatsManager(t, map[agents.ID]int{}, agents.Technology)

	sequence := []agents.ID{
		agents.Science, agents.Health, agents.Science,
		agents.Business, agents.Science, agents.Health,
	}
	for _, id := range sequence {
		m.RecordCompletion(id)
		stats := store.Current().Stats
		favCount := stats.AgentUsage[stats.FavoriteAgent]
		for id, count := range stats.AgentUsage {
			assert.GreaterOrEqual(t, favCount, count, "favorite %s beaten by %s", stats.FavoriteAgent, id)
		}
	}
	assert.Equal(t, agents.Science, store.Current().Stats.FavoriteAgent)
}

func TestRecordCompletionNilUsageMap(t *testing.T) {
	store := profile.NewStore(storage.NewMemory(), nil)
	store.Update(func(p *models.UserProfile) {
		p.Stats.AgentUsage = nil
	})
	m := NewManager(store)

	m.RecordCompletion(agents.Education)
	assert.Equal(t, 1, store.Current().Stats.AgentUsage[agents.Education])
}
