// Package session owns the conversation state machine: which agent is
// selected, the live message list, and the per-agent history archive.
// Exactly one agent's history is live at a time; everyone else's sits
// frozen in the archive under its catalog key.
package session

import (
	"time"

	"autc/internal/agents"
	"autc/internal/models"
	"autc/internal/profile"
)

type Manager struct {
	store *profile.Store
}

func NewManager(store *profile.Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Selection() models.Selection {
	return m.store.Current().LastActive
}

func (m *Manager) ActiveHistory() []models.Message {
	return m.store.Current().ActiveHistory
}

// SelectAgent switches the live conversation to the target agent,
// snapshotting the outgoing history into the archive and restoring the
// incoming one in the same update. Selecting the orchestrator sentinel
// means auto-routing mode. Re-selecting the active agent while the chat
// view is already up is a no-op so re-clicks cause no churn; viewingChat
// carries that UI fact in. Returns false on the no-op path.
func (m *Manager) SelectAgent(target agents.ID, viewingChat bool) bool {
	incoming := models.Pinned(target)
	outgoingKey := m.store.Current().LastActive.Key()
	incomingKey := incoming.Key()

	if outgoingKey == incomingKey && viewingChat {
		return false
	}

	m.store.Update(func(p *models.UserProfile) {
		p.AgentHistories[outgoingKey] = cloneMessages(p.ActiveHistory)
		p.ActiveHistory = cloneMessages(p.AgentHistories[incomingKey])
		p.LastActive = incoming
		if outgoingKey != incomingKey {
			p.Stats.SessionsStarted++
		}
	})
	return true
}

// AppendUserTurn appends to the live history. Appends are pure sequence
// appends; a message whose id is already present is dropped.
func (m *Manager) AppendUserTurn(msg models.Message) {
	m.appendActive(msg)
}

// AppendModelTurn appends a model-role message to the live history.
func (m *Manager) AppendModelTurn(msg models.Message) {
	m.appendActive(msg)
}

// AppendModelTurnFor lands a reply for the turn that originated under
// origin. If the user switched agents while the call was in flight, the
// reply goes to the originating agent's archived history instead of
// whatever conversation is active now.
func (m *Manager) AppendModelTurnFor(origin models.Selection, msg models.Message) {
	if origin.Key() == m.store.Current().LastActive.Key() {
		m.appendActive(msg)
		return
	}
	key := origin.Key()
	m.store.Update(func(p *models.UserProfile) {
		if containsID(p.AgentHistories[key], msg.ID) {
			return
		}
		p.AgentHistories[key] = append(cloneMessages(p.AgentHistories[key]), msg)
	})
}

func (m *Manager) appendActive(msg models.Message) {
	m.store.Update(func(p *models.UserProfile) {
		if containsID(p.ActiveHistory, msg.ID) {
			return
		}
		p.ActiveHistory = append(p.ActiveHistory, msg)
	})
}

// ClearActiveHistory empties the live history and the archive slot of the
// current agent together, so switching away and back cannot resurrect
// stale messages.
func (m *Manager) ClearActiveHistory() {
	m.store.Update(func(p *models.UserProfile) {
		key := p.LastActive.Key()
		p.ActiveHistory = []models.Message{}
		p.AgentHistories[key] = []models.Message{}
	})
}

// ExportActiveHistory snapshots the live conversation plus metadata.
// Read-only; state is untouched.
func (m *Manager) ExportActiveHistory() models.SessionExport {
	p := m.store.Current()
	mode := "Universal Orchestrator"
	if p.LastActive.Pinned {
		mode = string(p.LastActive.Agent)
	}
	return models.SessionExport{
		Meta: models.ExportMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			AgentMode: mode,
		},
		Messages: cloneMessages(p.ActiveHistory),
	}
}

func cloneMessages(in []models.Message) []models.Message {
	out := make([]models.Message, len(in))
	copy(out, in)
	return out
}

func containsID(msgs []models.Message, id string) bool {
	for _, m := range msgs {
		if m.ID == id {
			return true
		}
	}
	return false
}
