package session

import (
	"autc/internal/agents"
	"autc/internal/models"
)

// RecordCompletion credits one finished task to the agent and recomputes
// the favorite. Called once per successfully completed model turn, never
// on failed turns.
func (m *Manager) RecordCompletion(agentID agents.ID) {
	m.store.Update(func(p *models.UserProfile) {
		p.Stats.TasksCompleted++
		if p.Stats.AgentUsage == nil {
			p.Stats.AgentUsage = map[agents.ID]int{}
		}
		p.Stats.AgentUsage[agentID]++
		p.Stats.FavoriteAgent = favoriteAgent(p.Stats)
	})
}

// favoriteAgent scans counts in catalog declaration order; only a strictly
// greater count displaces the running maximum, so among equal maxima the
// first-seen agent wins.
func favoriteAgent(stats models.UsageStats) agents.ID {
	fav := stats.FavoriteAgent
	maxUsage := 0
	for _, a := range agents.Catalog {
		if count := stats.AgentUsage[a.ID]; count > maxUsage {
			maxUsage = count
			fav = a.ID
		}
	}
	return fav
}
