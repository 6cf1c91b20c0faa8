package ui

import (
	"fmt"
	"os"

	"autc/internal/agents"
	"autc/internal/llm"
	"autc/internal/logging"
	"autc/internal/models"
	"autc/internal/orchestrator"
	"autc/internal/profile"
	"autc/internal/session"
	"autc/internal/storage"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func InitialModel() Model {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		fmt.Println("Error: OPENROUTER_API_KEY environment variable not set")
		os.Exit(1)
	}

	log := logging.Open()

	var kv storage.KV
	db, dbErr := storage.Open()
	if dbErr != nil {
		// Memory-only mode: the session works, nothing survives restart.
		log.Warn("profile store unavailable, running in memory", zap.Error(dbErr))
		kv = storage.NewMemory()
	} else {
		kv = db
	}

	store := profile.NewStore(kv, log)
	sess := session.NewManager(store)
	client := llm.New(apiKey)

	ti := textarea.New()
	ti.Placeholder = "Ask the collective..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = 6
	ti.SetHeight(2)
	ti.SetWidth(80)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#80DEEA")).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#80DEEA")).Bold(true)
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#80DEEA"))

	vp := viewport.New(60, 15)

	m := Model{
		TextInput: ti,
		Viewport:  vp,
		Spinner:   sp,
		Store:     store,
		Session:   sess,
		Router:    orchestrator.New(client, log),
		LLM:       client,
		Log:       log,
		DB:        db,
		Messages:  []string{},
	}
	m.AgentSelectedIdx = selectorIndex(sess.Selection())
	m.RebuildMessages()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
	)
}

func NewProgram() *tea.Program {
	m := InitialModel()
	p := tea.NewProgram(&m, tea.WithAltScreen())
	m.Program = p
	return p
}

// selectorIndex maps the current selection onto its catalog position
// (index 0 is the orchestrator sentinel, shown as "Auto").
func selectorIndex(sel models.Selection) int {
	key := sel.Key()
	for i, a := range agents.Catalog {
		if a.ID == key {
			return i
		}
	}
	return 0
}
