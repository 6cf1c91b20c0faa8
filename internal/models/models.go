package models

import (
	"encoding/json"

	"autc/internal/agents"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

const (
	AttachmentImage = "image"
	AttachmentFile  = "file"
)

const (
	SnippetCode = "code"
	SnippetText = "text"
)

// Attachment carries opaque binary data (base64 data URL) alongside a message.
type Attachment struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

// Message is one conversation turn entry. Immutable once created; histories
// are append-only except for the explicit clear operation.
type Message struct {
	ID          string       `json:"id"`
	Role        string       `json:"role"`
	Text        string       `json:"text"`
	Timestamp   int64        `json:"timestamp"` // unix milliseconds
	AgentID     agents.ID    `json:"agentId,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type SavedSnippet struct {
	ID        string    `json:"id"`
	Kind      string    `json:"type"`
	Content   string    `json:"content"`
	Title     string    `json:"title"`
	AgentID   agents.ID `json:"agentId"`
	Timestamp int64     `json:"timestamp"`
}

type UsageStats struct {
	TasksCompleted  int               `json:"tasksCompleted"`
	SessionsStarted int               `json:"sessionsStarted"`
	FavoriteAgent   agents.ID         `json:"favAgent"`
	AgentUsage      map[agents.ID]int `json:"agentUsage"`
}

type Preferences struct {
	PublicProfile bool `json:"publicProfile"`
	DataTraining  bool `json:"dataTraining"`
	TwoFactor     bool `json:"twoFactor"`
}

// Selection is the two-state agent selection: auto-routing via the
// orchestrator, or a pinned specialist. It marshals to the persisted
// nullable-id form (null = auto) so old profiles keep loading.
type Selection struct {
	Pinned bool
	Agent  agents.ID
}

func Auto() Selection { return Selection{} }

func Pinned(id agents.ID) Selection {
	if id == agents.Orchestrator {
		return Selection{}
	}
	return Selection{Pinned: true, Agent: id}
}

// Key returns the archive key this selection owns. Auto mode owns the
// orchestrator sentinel slot.
func (s Selection) Key() agents.ID {
	if s.Pinned {
		return s.Agent
	}
	return agents.Orchestrator
}

func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.Pinned {
		return []byte("null"), nil
	}
	return json.Marshal(s.Agent)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Selection{}
		return nil
	}
	var id agents.ID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*s = Pinned(id)
	return nil
}

// UserProfile is the single persisted record. Mutations replace and
// persist the whole structure; there are no partial writes.
type UserProfile struct {
	Name           string                  `json:"name"`
	Role           string                  `json:"role"`
	Bio            string                  `json:"bio"`
	Avatar         string                  `json:"avatar,omitempty"`
	Stats          UsageStats              `json:"stats"`
	Preferences    Preferences             `json:"preferences"`
	SavedSnippets  []SavedSnippet          `json:"savedSnippets"`
	ActiveHistory  []Message               `json:"activeChatHistory"`
	LastActive     Selection               `json:"lastActiveAgentId"`
	AgentHistories map[agents.ID][]Message `json:"agentHistories"`
}

// ExportMeta labels an exported session document.
type ExportMeta struct {
	Timestamp string `json:"timestamp"`
	AgentMode string `json:"agentMode"`
}

// SessionExport is the downloadable session artifact. Write-only; there is
// no import path.
type SessionExport struct {
	Meta     ExportMeta `json:"meta"`
	Messages []Message  `json:"messages"`
}
