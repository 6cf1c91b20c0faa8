// Package snippets creates and manages the user's saved excerpts
// ("memory bank" entries): code blocks lifted from a conversation or
// manually entered notes.
package snippets

import (
	"regexp"
	"strings"
	"time"

	"autc/internal/agents"
	"autc/internal/models"
	"autc/internal/profile"

	"github.com/google/uuid"
)

const titlePreviewLen = 40

var codeFenceRE = regexp.MustCompile("(?s)```(html|svg|xml)(.*?)```")

// ExtractCode finds the first fenced html/svg/xml block in text.
func ExtractCode(text string) (fenceType, code string, ok bool) {
	match := codeFenceRE.FindStringSubmatch(text)
	if match == nil || strings.TrimSpace(match[2]) == "" {
		return "", "", false
	}
	return match[1], strings.TrimSpace(match[2]), true
}

// FromMessage builds a snippet out of a chat message. A fenced html/svg/xml
// block makes it a code snippet holding just the block; anything else is a
// text snippet of the whole message. fallback supplies the agent when the
// message does not carry one (user messages, orchestrator turns).
func FromMessage(msg models.Message, fallback models.Selection) models.SavedSnippet {
	agentID := msg.AgentID
	if agentID == "" {
		agentID = fallback.Key()
	}

	if _, code, ok := ExtractCode(msg.Text); ok {
		name := string(agentID)
		if a, err := agents.Get(agentID); err == nil {
			name = a.Name
		}
		return models.SavedSnippet{
			ID:        uuid.NewString(),
			Kind:      models.SnippetCode,
			Content:   code,
			Title:     "Snippet from " + name,
			AgentID:   agentID,
			Timestamp: time.Now().UnixMilli(),
		}
	}

	return models.SavedSnippet{
		ID:        uuid.NewString(),
		Kind:      models.SnippetText,
		Content:   msg.Text,
		Title:     titlePreview(msg.Text),
		AgentID:   agentID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Manual builds a snippet from direct user entry.
func Manual(kind, title, content string, agentID agents.ID) models.SavedSnippet {
	return models.SavedSnippet{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   content,
		Title:     title,
		AgentID:   agentID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Add prepends the snippet; the list is newest first.
func Add(store *profile.Store, sn models.SavedSnippet) {
	store.Update(func(p *models.UserProfile) {
		p.SavedSnippets = append([]models.SavedSnippet{sn}, p.SavedSnippets...)
	})
}

func Delete(store *profile.Store, id string) {
	store.Update(func(p *models.UserProfile) {
		kept := p.SavedSnippets[:0]
		for _, sn := range p.SavedSnippets {
			if sn.ID != id {
				kept = append(kept, sn)
			}
		}
		p.SavedSnippets = kept
	})
}

// Update rewrites a snippet's title and content in place, keeping order.
func Update(store *profile.Store, id, title, content string) {
	store.Update(func(p *models.UserProfile) {
		for i := range p.SavedSnippets {
			if p.SavedSnippets[i].ID == id {
				p.SavedSnippets[i].Title = title
				p.SavedSnippets[i].Content = content
				return
			}
		}
	})
}

func titlePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= titlePreviewLen {
		return text
	}
	return string(runes[:titlePreviewLen]) + "..."
}
