package session

import (
	"fmt"
	"testing"

	"autc/internal/agents"
	"autc/internal/models"
	"autc/internal/profile"
	"autc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *profile.Store) {
	t.Helper()
	store := profile.NewStore(storage.NewMemory(), nil)
	return NewManager(store), store
}

func msg(id, role, text string) models.Message {
	return models.Message{ID: id, Role: role, Text: text, Timestamp: 1}
}

func TestSwitchRestoreRoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	m.SelectAgent(agents.Science, false)
	m.AppendUserTurn(msg("u1", models.RoleUser, "Explain osmosis"))
	m.AppendModelTurn(msg("a1", models.RoleModel, "Osmosis is..."))

	before := m.ActiveHistory()
	require.Len(t, before, 2)

	m.SelectAgent(agents.Technology, true)
	assert.Empty(t, m.ActiveHistory())

	m.SelectAgent(agents.Science, true)
	assert.Equal(t, before, m.ActiveHistory())
}

func TestNoOpReselection(t *testing.T) {
	m, store := newTestManager(t)

	require.True(t, m.SelectAgent(agents.Science, false))
	m.AppendUserTurn(msg("u1", models.RoleUser, "hi"))
	sessions := store.Current().Stats.SessionsStarted

	// Already on science, already viewing chat: nothing moves.
	assert.False(t, m.SelectAgent(agents.Science, true))
	assert.Equal(t, sessions, store.Current().Stats.SessionsStarted)
	assert.Len(t, m.ActiveHistory(), 1)

	// Re-selecting while NOT viewing chat switches the view but is not a
	// genuine agent change, so the session counter stays put.
	assert.True(t, m.SelectAgent(agents.Science, false))
	assert.Equal(t, sessions, store.Current().Stats.SessionsStarted)
	assert.Len(t, m.ActiveHistory(), 1)
}

func TestSessionCounting(t *testing.T) {
	m, store := newTestManager(t)

	m.SelectAgent(agents.Science, false)    // genuine: auto -> science
	m.SelectAgent(agents.Science, true)     // no-op
	m.SelectAgent(agents.Technology, true)  // genuine
	m.SelectAgent(agents.Technology, false) // same agent, not viewing chat
	m.SelectAgent(agents.Orchestrator, true) // genuine: back to auto

	assert.Equal(t, 3, store.Current().Stats.SessionsStarted)
}

func TestOrchestratorSentinelOwnsAutoHistory(t *testing.T) {
	m, store := newTestManager(t)

	m.AppendUserTurn(msg("u1", models.RoleUser, "route me"))
	m.SelectAgent(agents.Health, true)
	assert.Empty(t, m.ActiveHistory())

	// The auto history was archived under the sentinel key.
	archived := store.Current().AgentHistories[agents.Orchestrator]
	require.Len(t, archived, 1)
	assert.Equal(t, "route me", archived[0].Text)

	m.SelectAgent(agents.Orchestrator, true)
	assert.False(t, m.Selection().Pinned)
	require.Len(t, m.ActiveHistory(), 1)
}

func TestAppendDedupByID(t *testing.T) {
	m, _ := newTestManager(t)

	m.AppendUserTurn(msg("dup", models.RoleUser, "once"))
	m.AppendUserTurn(msg("dup", models.RoleUser, "twice"))
	m.AppendModelTurn(msg("m1", models.RoleModel, "reply"))

	history := m.ActiveHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "once", history[0].Text)
}

func TestClearHistoryIsolation(t *testing.T) {
	m, store := newTestManager(t)

	m.SelectAgent(agents.Science, false)
	m.AppendUserTurn(msg("s1", models.RoleUser, "science question"))
	m.SelectAgent(agents.Technology, true)
	m.AppendUserTurn(msg("t1", models.RoleUser, "tech question"))

	m.ClearActiveHistory()

	assert.Empty(t, m.ActiveHistory())
	assert.Empty(t, store.Current().AgentHistories[agents.Technology])

	// Science's archive is untouched.
	require.Len(t, store.Current().AgentHistories[agents.Science], 1)

	// Switching away and back does not resurrect the cleared history.
	m.SelectAgent(agents.Science, true)
	m.SelectAgent(agents.Technology, true)
	assert.Empty(t, m.ActiveHistory())
}

func TestStaleReplyLandsInOriginArchive(t *testing.T) {
	m, store := newTestManager(t)

	m.SelectAgent(agents.Science, false)
	m.AppendUserTurn(msg("u1", models.RoleUser, "slow question"))
	origin := m.Selection()

	// User switches away while the reply is in flight.
	m.SelectAgent(agents.Business, true)

	m.AppendModelTurnFor(origin, msg("late", models.RoleModel, "late reply"))

	assert.Empty(t, m.ActiveHistory())
	archived := store.Current().AgentHistories[agents.Science]
	require.Len(t, archived, 2)
	assert.Equal(t, "late reply", archived[1].Text)

	// Switching back shows the redirected reply.
	m.SelectAgent(agents.Science, true)
	require.Len(t, m.ActiveHistory(), 2)
}

func TestAppendModelTurnForActiveOrigin(t *testing.T) {
	m, _ := newTestManager(t)

	m.SelectAgent(agents.Science, false)
	origin := m.Selection()
	m.AppendModelTurnFor(origin, msg("m1", models.RoleModel, "on time"))

	require.Len(t, m.ActiveHistory(), 1)
}

func TestExportActiveHistory(t *testing.T) {
	m, _ := newTestManager(t)

	m.AppendUserTurn(msg("u1", models.RoleUser, "hello"))
	export := m.ExportActiveHistory()
	assert.Equal(t, "Universal Orchestrator", export.Meta.AgentMode)
	assert.NotEmpty(t, export.Meta.Timestamp)
	require.Len(t, export.Messages, 1)

	m.SelectAgent(agents.Health, true)
	export = m.ExportActiveHistory()
	assert.Equal(t, "health", export.Meta.AgentMode)
	assert.Empty(t, export.Messages)

	// Export does not mutate state.
	assert.Empty(t, m.ActiveHistory())
}

func TestEndToEndScenario(t *testing.T) {
	m, store := newTestManager(t)
	baseTech := store.Current().Stats.AgentUsage[agents.Technology]

	require.True(t, m.SelectAgent(agents.Science, false))
	assert.Equal(t, 1, store.Current().Stats.SessionsStarted)

	m.AppendUserTurn(msg("u1", models.RoleUser, "Explain osmosis"))
	m.AppendModelTurn(models.Message{ID: "a1", Role: models.RoleModel, Text: "Osmosis is diffusion of water.", AgentID: agents.Science, Timestamp: 2})

	m.RecordCompletion(agents.Science)
	stats := store.Current().Stats
	assert.Equal(t, 1, stats.TasksCompleted)
	assert.Equal(t, 1, stats.AgentUsage[agents.Science])
	// Technology's default baseline still holds the max, so it stays
	// favorite.
	assert.Equal(t, agents.Technology, stats.FavoriteAgent)
	assert.Equal(t, baseTech, stats.AgentUsage[agents.Technology])

	twoTurns := m.ActiveHistory()
	require.Len(t, twoTurns, 2)

	require.True(t, m.SelectAgent(agents.Technology, true))
	assert.Equal(t, 2, store.Current().Stats.SessionsStarted)
	assert.Empty(t, m.ActiveHistory())

	require.True(t, m.SelectAgent(agents.Science, true))
	assert.Equal(t, 3, store.Current().Stats.SessionsStarted)
	assert.Equal(t, twoTurns, m.ActiveHistory())
}

func TestStatePersistsAcrossManagers(t *testing.T) {
	kv := storage.NewMemory()
	store := profile.NewStore(kv, nil)
	m := NewManager(store)

	m.SelectAgent(agents.Education, false)
	for i := 0; i < 3; i++ {
		m.AppendUserTurn(msg(fmt.Sprintf("u%d", i), models.RoleUser, "q"))
	}

	// A fresh store over the same KV sees the same conversation.
	m2 := NewManager(profile.NewStore(kv, nil))
	assert.True(t, m2.Selection().Pinned)
	assert.Equal(t, agents.Education, m2.Selection().Agent)
	assert.Len(t, m2.ActiveHistory(), 3)
}
