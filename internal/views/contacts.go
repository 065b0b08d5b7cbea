package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rhystmorgan/contactterm/internal/api"
	"rhystmorgan/contactterm/internal/models"
	"rhystmorgan/contactterm/internal/viewstate"
)

const requiredHint = "Please fill out this field."

// focusArea is the region that receives key presses. The first five values
// line up with viewstate.Field.
type focusArea int

const (
	focusName focusArea = iota
	focusAddress
	focusMobileNumber
	focusEmail
	focusMessage
	focusSubmit
	focusSearch
	focusSort
	focusCards
	focusPages
	focusCount
)

func (a focusArea) isField() bool {
	return a >= focusName && a <= focusMessage
}

func (a focusArea) field() viewstate.Field {
	return viewstate.Field(a)
}

type ContactsModel struct {
	source ContactSource
	ctx    context.Context
	logger *slog.Logger

	state viewstate.State

	// Name, address, mobile number and email. The message uses a textarea.
	inputs  [viewstate.FieldMessage]textinput.Model
	message textarea.Model
	search  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus        focusArea
	selectedCard int
	selectedPage int
	invalid      viewstate.Field
	showInvalid  bool

	width  int
	height int
}

func NewContactsModel(ctx context.Context, source ContactSource, logger *slog.Logger) *ContactsModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := &ContactsModel{
		source:       source,
		ctx:          ctx,
		logger:       logger,
		state:        viewstate.New(),
		message:      newMessageInput(),
		search:       newSearchInput(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(pendingStyle)),
		help:         help.New(),
		keys:         defaultKeyMap(),
		selectedPage: 1,
	}

	placeholders := [...]string{"Jane Doe", "12 High Street", "+44 7700 900000", "jane@example.com"}
	for i := range m.inputs {
		m.inputs[i] = newFieldInput(placeholders[i])
	}
	m.inputs[focusName].Focus()

	return m
}

func newFieldInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.CharLimit = 200
	input.Width = 40
	input.PromptStyle = lipgloss.NewStyle().Foreground(colour(Colours.Blue))
	input.TextStyle = lipgloss.NewStyle().Foreground(colour(Colours.Text))
	return input
}

func newMessageInput() textarea.Model {
	input := textarea.New()
	input.Placeholder = "Message"
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.CharLimit = 1000
	input.SetWidth(42)
	input.SetHeight(3)
	return input
}

func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "Search by name"
	input.Prompt = "⌕ "
	input.CharLimit = 50
	input.Width = 28
	input.PromptStyle = lipgloss.NewStyle().Foreground(colour(Colours.Overlay1))
	input.TextStyle = lipgloss.NewStyle().Foreground(colour(Colours.Text))
	return input
}

// State returns a copy of the current view state.
func (m *ContactsModel) State() viewstate.State {
	return m.state
}

func (m *ContactsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

func (m *ContactsModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), textinput.Blink)
}

func (m *ContactsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ContactsLoadedMsg:
		if msg.Err != nil {
			m.state = m.state.Fail(api.OpList, msg.Err)
			m.logger.Warn("load contacts failed", "err", msg.Err)
		} else {
			m.state = m.state.LoadCollection(msg.Contacts).Succeed(api.OpList)
			m.logger.Debug("contacts loaded", "count", len(msg.Contacts))
		}
		m.clampSelection()
		return m, nil

	case OpResultMsg:
		return m, m.handleResult(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// Cursor blink and other input-internal messages.
	return m, m.updateFocusedInput(msg)
}

func (m *ContactsModel) handleResult(msg OpResultMsg) tea.Cmd {
	if msg.Err != nil {
		m.state = m.state.Fail(msg.Op, msg.Err)
		m.logger.Warn("contact request failed", "op", msg.Op, "id", msg.ID, "err", msg.Err)
		return nil
	}

	m.state = m.state.Succeed(msg.Op)
	m.logger.Info("contact request succeeded", "op", msg.Op, "id", msg.ID)
	if msg.Op == api.OpCreate || msg.Op == api.OpUpdate {
		m.clearDraft()
	}
	return m.reload()
}

func (m *ContactsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Next):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Submit) && (m.focus.isField() || m.focus == focusSubmit):
		return m.submit()
	}

	if m.focus.isField() {
		return m.updateField(msg)
	}
	if m.focus == focusSearch {
		return m.updateSearch(msg)
	}

	if key.Matches(msg, m.keys.Page) {
		page, _ := strconv.Atoi(msg.String())
		if page <= m.state.Project().PageCount {
			m.goToPage(page)
		}
		return nil
	}

	switch m.focus {
	case focusSubmit:
		if key.Matches(msg, m.keys.Activate) {
			return m.submit()
		}

	case focusSort:
		if key.Matches(msg, m.keys.Activate) {
			m.state = m.state.ToggleSort()
			m.clampSelection()
		}

	case focusCards:
		visible := m.state.Project().Visible
		switch {
		case key.Matches(msg, m.keys.Left):
			if m.selectedCard > 0 {
				m.selectedCard--
			}
		case key.Matches(msg, m.keys.Right):
			if m.selectedCard < len(visible)-1 {
				m.selectedCard++
			}
		case key.Matches(msg, m.keys.Update):
			if contact, ok := m.selectedContact(); ok {
				return m.begin(api.OpUpdate, updateContact(m.ctx, m.source, contact.ID, m.state.Draft.Fields()))
			}
		case key.Matches(msg, m.keys.Delete):
			if contact, ok := m.selectedContact(); ok {
				return m.begin(api.OpDelete, deleteContact(m.ctx, m.source, contact.ID))
			}
		}

	case focusPages:
		pages := m.state.Project().PageCount
		switch {
		case key.Matches(msg, m.keys.Left):
			if m.selectedPage > 1 {
				m.selectedPage--
			}
		case key.Matches(msg, m.keys.Right):
			if m.selectedPage < pages {
				m.selectedPage++
			}
		case key.Matches(msg, m.keys.Activate):
			m.goToPage(m.selectedPage)
		}
	}

	return nil
}

func (m *ContactsModel) updateField(msg tea.KeyMsg) tea.Cmd {
	f := m.focus.field()

	if key.Matches(msg, m.keys.Clear) {
		m.clearDraft()
		return nil
	}
	// Enter in a single-line field submits the form; the message keeps it
	// for new lines.
	if f != viewstate.FieldMessage && msg.String() == "enter" {
		return m.submit()
	}

	m.showInvalid = false

	var cmd tea.Cmd
	if f == viewstate.FieldMessage {
		m.message, cmd = m.message.Update(msg)
		m.state = m.state.SetField(f, m.message.Value())
	} else {
		m.inputs[f], cmd = m.inputs[f].Update(msg)
		m.state = m.state.SetField(f, m.inputs[f].Value())
	}
	return cmd
}

func (m *ContactsModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.state.SearchTerm {
		m.state = m.state.SetSearch(term)
		m.clampSelection()
	}
	return cmd
}

func (m *ContactsModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.focus == focusMessage:
		m.message, cmd = m.message.Update(msg)
	case m.focus.isField():
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	case m.focus == focusSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}

// submit refuses while any field is empty and otherwise posts the draft.
func (m *ContactsModel) submit() tea.Cmd {
	if f, missing := m.state.Draft.FirstMissing(); missing {
		m.invalid = f
		m.showInvalid = true
		m.logger.Debug("submit refused", "field", f.Label())
		return m.setFocus(focusArea(f))
	}

	m.showInvalid = false
	return m.begin(api.OpCreate, createContact(m.ctx, m.source, m.state.Draft.Fields()))
}

func (m *ContactsModel) reload() tea.Cmd {
	return m.begin(api.OpList, loadContacts(m.ctx, m.source))
}

// begin marks op in flight and starts the spinner if nothing else was running.
func (m *ContactsModel) begin(op api.Op, cmd tea.Cmd) tea.Cmd {
	idle := !m.state.Busy()
	m.state = m.state.Begin(op)
	if idle {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *ContactsModel) clearDraft() {
	m.state = m.state.ClearDraft()
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.message.Reset()
	m.showInvalid = false
}

func (m *ContactsModel) goToPage(page int) {
	m.state = m.state.SetPage(page)
	m.selectedPage = page
	m.selectedCard = 0
}

func (m *ContactsModel) selectedContact() (models.Contact, bool) {
	visible := m.state.Project().Visible
	if m.selectedCard < 0 || m.selectedCard >= len(visible) {
		return models.Contact{}, false
	}
	return visible[m.selectedCard], true
}

func (m *ContactsModel) clampSelection() {
	p := m.state.Project()
	if m.selectedCard >= len(p.Visible) {
		m.selectedCard = max(len(p.Visible)-1, 0)
	}
	if m.selectedPage > p.PageCount {
		m.selectedPage = max(p.PageCount, 1)
	}
}

func (m *ContactsModel) cycleFocus(step int) tea.Cmd {
	next := m.focus
	for range focusCount {
		next = (next + focusArea(step) + focusCount) % focusCount
		if m.focusable(next) {
			break
		}
	}
	return m.setFocus(next)
}

// focusable skips the card and page regions while they are empty.
func (m *ContactsModel) focusable(area focusArea) bool {
	p := m.state.Project()
	switch area {
	case focusCards:
		return len(p.Visible) > 0
	case focusPages:
		return p.PageCount > 0
	default:
		return true
	}
}

func (m *ContactsModel) setFocus(area focusArea) tea.Cmd {
	switch {
	case m.focus == focusMessage:
		m.message.Blur()
	case m.focus.isField():
		m.inputs[m.focus].Blur()
	case m.focus == focusSearch:
		m.search.Blur()
	}

	m.focus = area
	if area == focusPages && m.selectedPage < 1 {
		m.selectedPage = 1
	}

	switch {
	case area == focusMessage:
		return m.message.Focus()
	case area.isField():
		return m.inputs[area].Focus()
	case area == focusSearch:
		return m.search.Focus()
	}
	return nil
}

func (m *ContactsModel) View() string {
	var content strings.Builder

	content.WriteString(m.renderForm())
	content.WriteString("\n")
	content.WriteString(m.renderToolbar())
	content.WriteString("\n")

	if cards := m.renderCards(); cards != "" {
		content.WriteString(cards)
		content.WriteString("\n")
	}
	if pages := m.renderPages(); pages != "" {
		content.WriteString(pages)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.renderStatus())
	content.WriteString("\n")
	content.WriteString(m.help.ShortHelpView(m.keys.bindingsFor(m.focus)))

	return content.String()
}

func (m *ContactsModel) renderForm() string {
	var form strings.Builder
	form.WriteString(headerStyle.Render("Contact Form"))
	form.WriteString("\n")

	for f := viewstate.Field(0); f < viewstate.FieldCount; f++ {
		label := labelStyle
		if m.focus == focusArea(f) {
			label = focusedLabelStyle
		}

		input := m.message.View()
		if f != viewstate.FieldMessage {
			input = m.inputs[f].View()
		}

		form.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label.Render(f.Label()+" *"), input))
		form.WriteString("\n")
		if m.showInvalid && m.invalid == f {
			form.WriteString(hintStyle.Render("! " + requiredHint))
			form.WriteString("\n")
		}
	}

	form.WriteString(m.button("Add", m.focus == focusSubmit))
	return form.String()
}

func (m *ContactsModel) renderToolbar() string {
	box := searchBoxStyle
	if m.focus == focusSearch {
		box = focusedSearchBoxStyle
	}

	sortLabel := "Sort " + m.state.SortOrder.Toggle().Label()
	toolbar := lipgloss.JoinHorizontal(lipgloss.Center,
		box.Render(m.search.View()),
		m.button(sortLabel, m.focus == focusSort),
	)
	return headerStyle.Render("Contacts") + "\n" + toolbar
}

func (m *ContactsModel) renderCards() string {
	visible := m.state.Project().Visible
	if len(visible) == 0 {
		return ""
	}

	cards := make([]string, 0, len(visible))
	for i, contact := range visible {
		style := cardStyle
		selected := m.focus == focusCards && i == m.selectedCard
		if selected {
			style = selectedCardStyle
		}
		cards = append(cards, style.Render(renderCard(contact, selected)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderCard(contact models.Contact, selected bool) string {
	lines := []string{
		fieldNameStyle.Render("Name: ") + contact.Name,
		fieldNameStyle.Render("Address: ") + contact.Address,
		fieldNameStyle.Render("Mobile Number: ") + contact.MobileNumber,
		fieldNameStyle.Render("Email: ") + contact.Email,
		fieldNameStyle.Render("Message: ") + contact.Message,
		"",
	}

	actions := mutedStyle.Render("[Update] [Delete]")
	if selected {
		actions = buttonStyle.Render("u Update") + " " + buttonStyle.Render("d Delete")
	}
	lines = append(lines, actions)
	return strings.Join(lines, "\n")
}

func (m *ContactsModel) renderPages() string {
	p := m.state.Project()
	if p.PageCount == 0 {
		return ""
	}

	buttons := make([]string, 0, p.PageCount)
	for page := 1; page <= p.PageCount; page++ {
		style := buttonStyle
		if page == p.Page {
			style = activePageStyle
		}
		if m.focus == focusPages && page == m.selectedPage {
			style = style.Underline(true).Foreground(colour(Colours.Yellow))
		}
		buttons = append(buttons, style.Render(strconv.Itoa(page)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithSpaces(buttons)...)
}

func joinWithSpaces(items []string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, item)
	}
	return out
}

func (m *ContactsModel) button(label string, focused bool) string {
	if focused {
		return focusedButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

var opLabels = []struct {
	op   api.Op
	verb string
}{
	{api.OpList, "Load"},
	{api.OpCreate, "Add"},
	{api.OpUpdate, "Update"},
	{api.OpDelete, "Delete"},
}

// renderStatus shows the spinner while a request is in flight, then one
// segment per operation that has run at least once.
func (m *ContactsModel) renderStatus() string {
	var parts []string
	if m.state.Busy() {
		parts = append(parts, m.spinner.View())
	}

	for _, entry := range opLabels {
		status := m.state.Ops.Get(entry.op)
		switch status.State {
		case viewstate.OpInFlight:
			parts = append(parts, pendingStyle.Render(entry.verb+"…"))
		case viewstate.OpSucceeded:
			parts = append(parts, successStyle.Render("✓ "+entry.verb))
		case viewstate.OpFailed:
			parts = append(parts, failureStyle.Render(fmt.Sprintf("✗ %s: %s", entry.verb, status.Message)))
		}
	}

	return strings.Join(parts, "  ")
}
