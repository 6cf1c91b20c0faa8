package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"autc/internal/agents"
	"autc/internal/export"
	"autc/internal/llm"
	"autc/internal/models"
	"autc/internal/snippets"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.Loading {
			m.UpdateViewport()
		}
		return m, spCmd

	case tea.KeyMsg:
		if m.AgentSelectorOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "ctrl+a":
				m.AgentSelectorOpen = false
				return m, nil
			case "up", "k":
				m.AgentSelectedIdx--
				if m.AgentSelectedIdx < 0 {
					m.AgentSelectedIdx = len(agents.Catalog) - 1
				}
				return m, nil
			case "down", "j":
				m.AgentSelectedIdx++
				if m.AgentSelectedIdx >= len(agents.Catalog) {
					m.AgentSelectedIdx = 0
				}
				return m, nil
			case "enter":
				m.applyAgentSelection(agents.Catalog[m.AgentSelectedIdx].ID)
				return m, nil
			}
			return m, nil
		}

		if m.ClearConfirmOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "y":
				m.Session.ClearActiveHistory()
				m.ClearConfirmOpen = false
				m.Notice = "History cleared"
				m.RebuildMessages()
				m.UpdateViewport()
				return m, nil
			case "esc", "n":
				m.ClearConfirmOpen = false
				return m, nil
			}
			return m, nil
		}

		if m.ShortcutsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "ctrl+s":
				m.ShortcutsOpen = false
				return m, nil
			}
			return m, nil
		}

		if isNewlineShortcut(msg) {
			m.TextInput.InsertString("\n")
			m.updateInputLayout()
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlA:
			m.AgentSelectorOpen = true
			m.ClearConfirmOpen = false
			m.ShortcutsOpen = false
			m.AgentSelectedIdx = selectorIndex(m.Session.Selection())
			return m, nil

		case tea.KeyCtrlE:
			m.exportSession()
			return m, nil

		case tea.KeyCtrlX:
			if len(m.Session.ActiveHistory()) > 0 {
				m.ClearConfirmOpen = true
			}
			return m, nil

		case tea.KeyCtrlS:
			m.ShortcutsOpen = true
			return m, nil

		case tea.KeyCtrlB:
			m.saveLastReplySnippet()
			return m, nil

		case tea.KeyEnter:
			if m.Loading {
				return m, nil
			}
			input := strings.TrimSpace(m.TextInput.Value())
			if input == "" {
				return m, nil
			}
			if input == "/clear" {
				m.TextInput.Reset()
				if len(m.Session.ActiveHistory()) > 0 {
					m.ClearConfirmOpen = true
				}
				return m, nil
			}
			return m, m.startTurn(input)
		}

	case RoutingMsg:
		if msg.Token == m.TurnToken && m.Loading {
			name := string(msg.AgentID)
			if a, err := agents.Get(msg.AgentID); err == nil {
				name = a.Name
			}
			m.StatusLine = fmt.Sprintf("Routing to %s...", name)
			m.UpdateViewport()
		}
		return m, nil

	case TurnResultMsg:
		return m.finishTurn(msg)

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = msg.Width - 10
		if ModalWidth > 60 {
			ModalWidth = 60
		}
		if ModalWidth < 30 {
			ModalWidth = 30
		}

		chatWidth := msg.Width - 2
		m.Viewport.Width = chatWidth - 2

		m.updateInputLayout()
		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		m.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(chatWidth-6),
		)
		m.RebuildMessages()
		m.UpdateViewport()
		return m, tea.Batch(tiCmd, vpCmd)
	}

	m.TextInput, tiCmd = m.TextInput.Update(msg)
	m.updateInputLayout()

	// Filter terminal background color queries that leak into the input.
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}

	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func isNewlineShortcut(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "shift+enter", "shift+return", "ctrl+j", "ctrl+enter", "alt+enter":
		return true
	default:
		return false
	}
}

func (m *Model) updateInputLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	maxInputHeight := 6
	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > maxInputHeight {
		lineCount = maxInputHeight
	}

	m.TextInput.MaxHeight = maxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	inputBoxHeight := m.TextInput.Height() + 2
	reserved := inputBoxHeight + 5
	viewportHeight := m.WindowHeight - reserved
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	m.Viewport.Height = viewportHeight
}

// applyAgentSelection pins (or unpins) the agent and swaps the visible
// conversation. The chat view is the only view, so re-selecting the
// active agent is always the no-op path.
func (m *Model) applyAgentSelection(target agents.ID) {
	m.AgentSelectorOpen = false
	if !m.Session.SelectAgent(target, true) {
		return
	}
	m.Notice = ""
	m.RebuildMessages()
	m.UpdateViewport()
}

func (m *Model) exportSession() {
	doc := m.Session.ExportActiveHistory()
	if len(doc.Messages) == 0 {
		m.Notice = "Nothing to export"
		return
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	path, err := export.WriteSession(cwd, doc)
	if err != nil {
		m.Log.Warn("session export failed", zap.Error(err))
		m.Notice = "Export failed"
		return
	}
	m.Notice = "Session exported to " + path
}

func (m *Model) saveLastReplySnippet() {
	history := m.Session.ActiveHistory()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleModel {
			sn := snippets.FromMessage(history[i], m.Session.Selection())
			snippets.Add(m.Store, sn)
			m.Notice = "Saved to memory bank: " + sn.Title
			return
		}
	}
	m.Notice = "No reply to save yet"
}

// startTurn appends the user message optimistically and kicks off the
// background turn. The send path is disabled while a turn is pending, so
// at most one generation is outstanding.
func (m *Model) startTurn(input string) tea.Cmd {
	m.TurnToken++
	origin := m.Session.Selection()

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleUser,
		Text:      input,
		Timestamp: time.Now().UnixMilli(),
	}
	m.Session.AppendUserTurn(userMsg)

	m.Messages = append(m.Messages, FormatUserMessage(input, m.Viewport.Width, len(m.Messages) == 0))
	m.TextInput.Reset()
	m.updateInputLayout()
	m.Loading = true
	m.Notice = ""
	if origin.Pinned {
		m.StatusLine = "Processing..."
	} else {
		m.StatusLine = "Analyzing intent..."
	}
	m.UpdateViewport()

	return tea.Batch(m.RunTurn(input, origin, m.TurnToken), m.Spinner.Tick)
}

// RunTurn executes one turn off the UI goroutine: route if in auto mode,
// then generate the persona reply. It always produces a TurnResultMsg;
// failures come back as classified user-facing text.
func (m *Model) RunTurn(input string, origin models.Selection, token int) tea.Cmd {
	history := m.Session.ActiveHistory()
	prior := history
	if len(prior) > 0 {
		prior = prior[:len(prior)-1]
	}

	return func() tea.Msg {
		ctx := context.Background()

		targetID := origin.Agent
		if !origin.Pinned {
			dec := m.Router.Decide(ctx, input, history)
			targetID = dec.AgentID
			if m.Program != nil {
				m.Program.Send(RoutingMsg{AgentID: targetID, Token: token})
			}
			time.Sleep(RoutingRevealPause)
		}

		agent, err := agents.Get(agents.Normalize(targetID))
		if err != nil {
			agent, _ = agents.Get(agents.Fallback)
		}

		text, err := m.LLM.GenerateReply(ctx, agent.Directive, prior, input, "")
		if err != nil {
			kind, userMsg := llm.Classify(err)
			m.Log.Warn("reply generation failed",
				zap.String("kind", string(kind)),
				zap.String("agent", string(agent.ID)),
				zap.Error(err),
			)
			return TurnResultMsg{
				Token:   token,
				Origin:  origin,
				AgentID: agent.ID,
				Text:    "⚠️ **Communication Error**: " + userMsg,
				Failed:  true,
			}
		}

		return TurnResultMsg{Token: token, Origin: origin, AgentID: agent.ID, Text: text}
	}
}

// finishTurn lands a turn result. Replies for a conversation the user has
// switched away from go to the originating agent's archived history
// rather than the active one.
func (m *Model) finishTurn(msg TurnResultMsg) (tea.Model, tea.Cmd) {
	reply := models.Message{
		ID:        uuid.NewString(),
		Role:      models.RoleModel,
		Text:      msg.Text,
		Timestamp: time.Now().UnixMilli(),
		AgentID:   msg.AgentID,
	}

	if msg.Token == m.TurnToken {
		m.Loading = false
		m.StatusLine = ""
	}

	current := m.Session.Selection()
	if msg.Origin.Key() != current.Key() {
		m.Session.AppendModelTurnFor(msg.Origin, reply)
		if !msg.Failed {
			m.Session.RecordCompletion(msg.AgentID)
		}
		m.Log.Info("reply landed in originating agent history",
			zap.String("origin", string(msg.Origin.Key())),
			zap.String("active", string(current.Key())),
		)
		m.Notice = fmt.Sprintf("Reply saved to the %s conversation", msg.Origin.Key())
		m.UpdateViewport()
		return m, nil
	}

	m.Session.AppendModelTurn(reply)
	if !msg.Failed {
		m.Session.RecordCompletion(msg.AgentID)
	}

	displayContent := msg.Text
	if m.Renderer != nil {
		rendered, _ := m.Renderer.Render(msg.Text)
		displayContent = strings.TrimSpace(rendered)
	}
	m.Messages = append(m.Messages, FormatAgentMessage(msg.AgentID, displayContent))
	m.UpdateViewport()
	return m, nil
}
