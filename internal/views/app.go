package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/contactterm/internal/api"
)

// ServerStatus reports where the contacts server is and whether the last
// request reached it. *api.Client implements it.
type ServerStatus interface {
	BaseURL() string
	GetStatus() api.Status
}

var _ ServerStatus = (*api.Client)(nil)

// AppModel is the program root: a title bar over the contacts screen.
type AppModel struct {
	width    int
	height   int
	server   ServerStatus
	contacts *ContactsModel
}

func NewAppModel(contacts *ContactsModel, server ServerStatus) AppModel {
	return AppModel{
		server:   server,
		contacts: contacts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.contacts.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Leave room for the title bar.
		m.contacts.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	model, cmd := m.contacts.Update(msg)
	if contactsModel, ok := model.(*ContactsModel); ok {
		m.contacts = contactsModel
	}
	return m, cmd
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := titleStyle.Width(m.width).Render(
		"contactterm " + mutedStyle.Render(m.server.BaseURL()) + " " + renderServerStatus(m.server.GetStatus()),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Render(title + "\n" + m.contacts.View())
}

func renderServerStatus(status api.Status) string {
	switch {
	case status.LastChecked.IsZero():
		return mutedStyle.Render("○ connecting")
	case status.Reachable:
		return successStyle.Render("● online")
	default:
		return failureStyle.Render("● offline")
	}
}
