package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PhaseRow is a provisioning phase as displayed in the dashboard.
type PhaseRow struct {
	Name    string
	Key     string
	Done    bool
	Skipped bool
	Active  bool
	Err     error
}

// Model is the Bubble Tea model for the provisioning dashboard.
type Model struct {
	ServerName string
	Resumed    bool

	Phases []PhaseRow

	// Reboot handoff
	RebootPending bool
	RebootErr     error

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
}

// NewApplyModel creates a model for the apply command TUI.
func NewApplyModel(serverName string, resumed bool) Model {
	return Model{
		ServerName: serverName,
		Resumed:    resumed,
		StartTime:  time.Now(),
		Phases: []PhaseRow{
			{Name: "System Update", Key: "system"},
			{Name: "Dependencies", Key: "packages"},
			{Name: "Service Account", Key: "account"},
			{Name: "Firewall", Key: "firewall"},
			{Name: "Application", Key: "app"},
			{Name: "Service Unit", Key: "service"},
		},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case RebootMsg:
		m.RebootPending = true
		m.RebootErr = msg.Err
		return m, tea.Quit

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Key == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Anything before the reported phase has finished.
	for i := 0; i < idx; i++ {
		if !m.Phases[i].Skipped {
			m.Phases[i].Done = true
		}
		m.Phases[i].Active = false
	}

	switch {
	case msg.Skipped:
		m.Phases[idx].Skipped = true
		m.Phases[idx].Active = false
	case msg.Done:
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
	default:
		m.Phases[idx].Active = true
	}

	if msg.Err != nil {
		m.Phases[idx].Err = msg.Err
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
