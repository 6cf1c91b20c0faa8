package ui

import (
	"fmt"
	"strings"

	"autc/internal/agents"
	"autc/internal/models"
	"autc/internal/styles"

	"github.com/mattn/go-runewidth"
)

// WrappedLineCount reports how many display lines value occupies when
// wrapped at width columns, counting wide runes properly.
func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

func FormatUserMessage(content string, width int, isFirst bool) string {
	label := styles.UserLabelStyle.Render("YOU")
	msg := styles.UserMsgStyle.Width(width - 4).Render(content)
	if isFirst {
		return fmt.Sprintf("\n%s\n%s", label, msg)
	}
	return fmt.Sprintf("%s\n%s", label, msg)
}

func FormatAgentMessage(id agents.ID, content string) string {
	name := strings.ToUpper(string(id))
	if a, err := agents.Get(id); err == nil {
		name = strings.ToUpper(a.Name)
	}
	label := styles.AgentLabelStyle.Background(styles.AgentColor(id)).Render(name)
	msg := styles.AgentMsgStyle.Render(content)
	return fmt.Sprintf("%s\n%s", label, msg)
}

// RebuildMessages re-renders the visible transcript from the active
// history, used after a selection switch, a clear, or a resize.
func (m *Model) RebuildMessages() {
	history := m.Session.ActiveHistory()
	m.Messages = m.Messages[:0]
	for i, msg := range history {
		switch msg.Role {
		case models.RoleUser:
			m.Messages = append(m.Messages, FormatUserMessage(msg.Text, m.Viewport.Width, i == 0))
		case models.RoleModel:
			content := msg.Text
			if m.Renderer != nil {
				if rendered, err := m.Renderer.Render(msg.Text); err == nil {
					content = strings.TrimSpace(rendered)
				}
			}
			m.Messages = append(m.Messages, FormatAgentMessage(msg.AgentID, content))
		}
	}
}
