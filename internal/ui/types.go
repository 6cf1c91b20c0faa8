package ui

import (
	"time"

	"autc/internal/agents"
	"autc/internal/llm"
	"autc/internal/models"
	"autc/internal/orchestrator"
	"autc/internal/profile"
	"autc/internal/session"
	"autc/internal/storage"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

var ModalWidth = 60

const (
	// Brief pause after a routing decision so the "Routing to ..." status
	// is actually readable before the reply starts generating.
	RoutingRevealPause = 600 * time.Millisecond
)

// RoutingMsg reports which agent the orchestrator picked for an in-flight
// auto-routed turn.
type RoutingMsg struct {
	AgentID agents.ID
	Token   int
}

// TurnResultMsg carries the outcome of one model turn. Failed turns carry
// the classified user-facing error text so the thread stays coherent.
type TurnResultMsg struct {
	Token   int
	Origin  models.Selection
	AgentID agents.ID
	Text    string
	Failed  bool
}

type Model struct {
	Viewport  viewport.Model
	TextInput textarea.Model
	Spinner   spinner.Model
	Renderer  *glamour.TermRenderer
	Program   *tea.Program

	Store   *profile.Store
	Session *session.Manager
	Router  *orchestrator.Orchestrator
	LLM     *llm.Client
	Log     *zap.Logger
	DB      *storage.SQLite

	Messages     []string
	Loading      bool
	StatusLine   string
	Notice       string
	TurnToken    int
	WindowWidth  int
	WindowHeight int

	AgentSelectorOpen bool
	AgentSelectedIdx  int
	ClearConfirmOpen  bool
	ShortcutsOpen     bool
}
