package styles

import (
	"github.com/charmbracelet/lipgloss"

	"autc/internal/agents"
)

var (
	ContentWidth = 54
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#80DEEA")).
			Padding(0, 1)

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#90CAF9")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"}).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#90CAF9"))

	AgentLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	AgentMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"}).
			PaddingTop(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#80DEEA"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF9A9A")).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A5D6A7")).
			Italic(true)

	RoutingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#80DEEA")).
			Italic(true)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#80DEEA")).
			Padding(0, 1)

	WelcomeArtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Bold(true)

	WelcomeSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#545454")).
				Italic(true)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#80DEEA")).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#80DEEA")).
			Width(ContentWidth).
			MarginBottom(1)

	ModalItemStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Width(ContentWidth)

	ModalSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Width(ContentWidth).
				Background(lipgloss.Color("#2E4A52")).
				Foreground(lipgloss.Color("#FFFFFF"))

	AgentNameStyle = lipgloss.NewStyle().
			Bold(true).
			MarginRight(1).
			Foreground(lipgloss.AdaptiveColor{Light: "#1a1a2e", Dark: "#FFFFFF"})

	DescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(50)

	HintColor = lipgloss.Color("#545454")

	StatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#90CAF9"))
)

// AgentColor returns the display color for a catalog agent.
func AgentColor(id agents.ID) lipgloss.Color {
	if a, err := agents.Get(id); err == nil {
		return lipgloss.Color(a.Color)
	}
	return lipgloss.Color("#80DEEA")
}
