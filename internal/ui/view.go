package ui

import (
	"fmt"
	"strings"

	"autc/internal/agents"
	"autc/internal/styles"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) RenderAgentSelector() string {
	title := styles.ModalTitleStyle.Render("Select Agent")

	items := make([]string, 0, len(agents.Catalog))
	for i, agent := range agents.Catalog {
		isSelected := i == m.AgentSelectedIdx
		cursor := "  "
		if isSelected {
			cursor = "> "
		}

		name := agent.Name
		if agent.ID == agents.Orchestrator {
			name = "Auto (Orchestrator)"
		}
		nameStyled := styles.AgentNameStyle.Foreground(lipgloss.Color(agent.Color)).Render(fmt.Sprintf("%s %s", agent.Icon, name))
		line := fmt.Sprintf("%s%s", cursor, nameStyled)
		desc := styles.DescStyle.Render("    " + TruncateRunes(agent.Description, 50))

		item := lipgloss.JoinVertical(lipgloss.Left, line, desc)
		if isSelected {
			items = append(items, styles.ModalSelectedStyle.Render(item))
		} else {
			items = append(items, styles.ModalItemStyle.Render(item))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, items...)
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • Enter: select • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderClearConfirm() string {
	title := styles.ModalTitleStyle.Render("Clear Conversation")

	body := styles.ModalItemStyle.Render(
		"Delete the current conversation history?\nThis cannot be undone.")

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter/Y: clear • Esc/N: cancel")

	return lipgloss.JoinVertical(lipgloss.Left, title, body, hint)
}

func (m *Model) RenderShortcutsModal() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Ctrl+C", "Quit Application"},
		{"Ctrl+A", "Select Agent / Auto Mode"},
		{"Ctrl+E", "Export Session to JSON"},
		{"Ctrl+X", "Clear Conversation"},
		{"Ctrl+B", "Save Last Reply as Snippet"},
		{"Ctrl+S", "View Shortcuts (this menu)"},
		{"Shift+Enter", "Insert Newline"},
	}

	var items []string
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCC80")).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E0E0"))

	for _, s := range shortcuts {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), descStyle.Render(s.desc))
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	listContent := lipgloss.JoinVertical(lipgloss.Left, items...)
	content := lipgloss.JoinVertical(lipgloss.Left, title, listContent)

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderBottomBar() string {
	sel := m.Session.Selection()

	modeBadge := "AUTO"
	modeColor := "#80DEEA"
	if sel.Pinned {
		if a, err := agents.Get(sel.Agent); err == nil {
			modeBadge = strings.ToUpper(a.Name)
			modeColor = a.Color
		} else {
			modeBadge = strings.ToUpper(string(sel.Agent))
		}
	}
	mode := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(modeColor)).
		Padding(0, 1).
		Render(modeBadge)

	stats := m.Store.Current().Stats
	favName := string(stats.FavoriteAgent)
	if a, err := agents.Get(stats.FavoriteAgent); err == nil {
		favName = a.Name
	}
	statsText := styles.StatStyle.Render(fmt.Sprintf(
		"Tasks:%d Sessions:%d Fav:%s",
		stats.TasksCompleted, stats.SessionsStarted, favName,
	))

	var middle string
	if m.Notice != "" {
		middle = styles.NoticeStyle.Render(TruncateRunes(m.Notice, 60))
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Render("Help: ^S")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, mode, "  ", middle)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, statsText, "  ", help)

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(0, 1).
		Render(bar)
}

func GetWelcomeScreen(width, height int) string {
	art := `
 ╭────────────────────────────────────────────╮
 │                                            │
 │    ▄▄▄      █    ██ ▄▄▄█████▓ ▄████▄       │
 │   ▒████▄    ██  ▓██▒▓  ██▒ ▓▒▒██▀ ▀█       │
 │   ▒██  ▀█▄ ▓██  ▒██░▒ ▓██░ ▒░▒▓█    ▄      │
 │   ░██▄▄▄▄██▓▓█  ░██░░ ▓██▓ ░ ▒▓▓▄ ▄██▒     │
 │    ▓█   ▓██▒▒█████▓   ▒██▒ ░ ▒ ▓███▀ ░     │
 │    ▒▒   ▓▒█░▒▓▒ ▒ ▒   ▒ ░░   ░ ░▒ ▒  ░     │
 │     ▒   ▒▒ ░░▒░ ░ ░     ░      ░  ▒        │
 │     ░   ▒   ░░░ ░ ░   ░      ░             │
 │         ░  ░  ░              ░ ░           │
 │                                            │
 ╰────────────────────────────────────────────╯
`
	subtitle := "Universal orchestration. One question, the right specialist."

	styledArt := styles.WelcomeArtStyle.Render(art)
	styledSubtitle := styles.WelcomeSubtitleStyle.Italic(true).Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, styledArt, "", styledSubtitle)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) UpdateViewport() {
	if len(m.Messages) == 0 && !m.Loading {
		m.Viewport.SetContent(GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height))
		return
	}

	content := strings.Join(m.Messages, "\n\n")
	if m.Loading {
		statusText := " Generating..."
		if m.StatusLine != "" {
			statusText = " " + m.StatusLine
		}

		loadingMsg := fmt.Sprintf("%s%s", m.Spinner.View(), styles.RoutingStyle.Render(statusText))
		if len(m.Messages) > 0 {
			content = content + "\n\n" + loadingMsg
		} else {
			content = loadingMsg
		}
	}
	m.Viewport.SetContent(content)
	m.Viewport.GotoBottom()
}

func (m *Model) View() string {
	inputWidth := m.WindowWidth - 4
	inputBox := styles.InputBoxStyle.Width(inputWidth).Render(m.TextInput.View())

	titleText := "AUTC"
	sel := m.Session.Selection()
	if sel.Pinned {
		if a, err := agents.Get(sel.Agent); err == nil {
			titleText = fmt.Sprintf("AUTC · %s %s", a.Icon, a.Name)
		}
	} else {
		titleText = "AUTC · ◉ Auto"
	}

	chatContent := lipgloss.JoinVertical(lipgloss.Center,
		styles.TitleStyle.Render(titleText),
		"",
		m.Viewport.View(),
		"",
		inputBox,
	)
	chatArea := lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	bottomBar := m.RenderBottomBar()

	content := lipgloss.JoinVertical(lipgloss.Left, chatArea, bottomBar)

	if m.AgentSelectorOpen {
		return m.placeModal(m.RenderAgentSelector())
	}
	if m.ClearConfirmOpen {
		return m.placeModal(m.RenderClearConfirm())
	}
	if m.ShortcutsOpen {
		return m.placeModal(m.RenderShortcutsModal())
	}

	return content
}

func (m *Model) placeModal(body string) string {
	modal := styles.ModalStyle.Width(ModalWidth).Render(body)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}
