package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/contactterm/internal/api"
	"rhystmorgan/contactterm/internal/models"
	"rhystmorgan/contactterm/internal/viewstate"
)

type updateCall struct {
	id     string
	fields models.ContactFields
}

type fakeSource struct {
	mu        sync.Mutex
	contacts  []models.Contact
	created   []models.ContactFields
	updated   []updateCall
	deleted   []string
	lists     int
	listErr   error
	mutateErr error
}

func newFakeSource(names ...string) *fakeSource {
	src := &fakeSource{}
	for _, name := range names {
		src.contacts = append(src.contacts, completeFields(name).WithID("id-"+name))
	}
	return src
}

func (f *fakeSource) List(context.Context) ([]models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Contact(nil), f.contacts...), nil
}

func (f *fakeSource) Create(_ context.Context, fields models.ContactFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.created = append(f.created, fields)
	f.contacts = append(f.contacts, fields.WithID(fmt.Sprintf("new-%d", len(f.created))))
	return nil
}

func (f *fakeSource) Update(_ context.Context, id string, fields models.ContactFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.updated = append(f.updated, updateCall{id: id, fields: fields})
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts[i] = fields.WithID(id)
		}
	}
	return nil
}

func (f *fakeSource) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.deleted = append(f.deleted, id)
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			break
		}
	}
	return nil
}

func completeFields(name string) models.ContactFields {
	return models.ContactFields{
		Name:         name,
		Address:      name + " Street",
		MobileNumber: "555",
		Email:        strings.ToLower(name) + "@example.com",
		Message:      "hello " + name,
	}
}

// collect runs cmd and returns the data source results it produces. Timer
// commands such as cursor blinks never finish in time and are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		switch msg := msg.(type) {
		case tea.BatchMsg:
			var out []tea.Msg
			for _, c := range msg {
				out = append(out, collect(c)...)
			}
			return out
		case ContactsLoadedMsg, OpResultMsg, tea.QuitMsg:
			return []tea.Msg{msg}
		}
	case <-time.After(50 * time.Millisecond):
	}
	return nil
}

// settle feeds every result of cmd back into m until nothing is pending.
func settle(m *ContactsModel, cmd tea.Cmd) {
	pending := collect(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		_, next := m.Update(msg)
		pending = append(pending, collect(next)...)
	}
}

func press(m *ContactsModel, msg tea.KeyMsg) {
	_, cmd := m.Update(msg)
	settle(m, cmd)
}

func typeText(m *ContactsModel, text string) {
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight    = tea.KeyMsg{Type: tea.KeyRight}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlR    = tea.KeyMsg{Type: tea.KeyCtrlR}
)

func fillForm(m *ContactsModel, fields models.ContactFields) {
	values := []string{fields.Name, fields.Address, fields.MobileNumber, fields.Email, fields.Message}
	for i, value := range values {
		typeText(m, value)
		if i < len(values)-1 {
			press(m, keyTab)
		}
	}
}

func newLoadedModel(t *testing.T, src *fakeSource) *ContactsModel {
	t.Helper()
	m := NewContactsModel(context.Background(), src, nil)
	settle(m, m.Init())
	if m.State().Ops.List.State != viewstate.OpSucceeded {
		t.Fatalf("initial load: %+v", m.State().Ops.List)
	}
	return m
}

func TestInitLoadsContacts(t *testing.T) {
	m := newLoadedModel(t, newFakeSource("Bob", "Alice", "Carol"))

	if got := len(m.State().Contacts); got != 3 {
		t.Errorf("Expected 3 contacts, got %d", got)
	}
	if m.State().Busy() {
		t.Error("Expected no request in flight after load")
	}

	view := m.View()
	for _, want := range []string{"Contact Form", "Contacts", "Alice", "Bob", "Sort Z-A"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
	// Page size 2: Carol is on page 2.
	if strings.Contains(view, "Carol") {
		t.Error("Carol should not be on page 1")
	}
}

func TestSubmitWithEmptyFieldIssuesNoRequest(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	typeText(m, "Alice")
	press(m, keyCtrlS)

	if len(src.created) != 0 {
		t.Errorf("Expected no create request, got %+v", src.created)
	}
	if m.State().Ops.Create.State != viewstate.OpIdle {
		t.Errorf("Expected create idle, got %s", m.State().Ops.Create.State)
	}
	if m.focus != focusAddress {
		t.Errorf("Expected focus on the address field, got %d", m.focus)
	}
	if !strings.Contains(m.View(), requiredHint) {
		t.Error("Expected the required-field hint in the view")
	}
	if m.State().Draft.Name != "Alice" {
		t.Errorf("Draft lost the name: %+v", m.State().Draft)
	}
}

func TestWhitespaceCountsAsFilled(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	fillForm(m, models.ContactFields{Name: " ", Address: " ", MobileNumber: " ", Email: " ", Message: " "})
	press(m, keyCtrlS)

	if len(src.created) != 1 {
		t.Errorf("Expected one create request, got %d", len(src.created))
	}
}

func TestSubmitCreatesReloadsAndClears(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	want := completeFields("Alice")
	fillForm(m, want)
	if m.State().Draft.Fields() != want {
		t.Fatalf("Draft = %+v, want %+v", m.State().Draft.Fields(), want)
	}

	press(m, keyCtrlS)

	if len(src.created) != 1 || src.created[0] != want {
		t.Fatalf("Expected create with %+v, got %+v", want, src.created)
	}
	if src.lists != 1 {
		t.Errorf("Expected one reload after create, got %d", src.lists)
	}

	state := m.State()
	if !state.Draft.IsEmpty() {
		t.Errorf("Expected cleared draft, got %+v", state.Draft)
	}
	if m.inputs[viewstate.FieldName].Value() != "" || m.message.Value() != "" {
		t.Error("Expected cleared inputs")
	}
	if len(state.Contacts) != 1 || state.Contacts[0].Name != "Alice" {
		t.Errorf("Expected reloaded collection, got %+v", state.Contacts)
	}
	if state.Ops.Create.State != viewstate.OpSucceeded || state.Ops.List.State != viewstate.OpSucceeded {
		t.Errorf("Unexpected op status: %+v", state.Ops)
	}
}

func TestEnterOnSubmitButton(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	fillForm(m, completeFields("Dana"))
	press(m, keyTab)
	if m.focus != focusSubmit {
		t.Fatalf("Expected submit focus, got %d", m.focus)
	}
	press(m, keyEnter)

	if len(src.created) != 1 {
		t.Errorf("Expected one create request, got %d", len(src.created))
	}
}

func TestEnterInFieldSubmits(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	want := completeFields("Frank")
	fillForm(m, want)
	press(m, keyShiftTab)
	if m.focus != focusEmail {
		t.Fatalf("Expected email focus, got %d", m.focus)
	}
	press(m, keyEnter)

	if len(src.created) != 1 || src.created[0] != want {
		t.Errorf("Expected create with %+v, got %+v", want, src.created)
	}
}

func TestEnterInMessageAddsNewline(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	fillForm(m, completeFields("Gina"))
	press(m, keyEnter)
	typeText(m, "more")

	if len(src.created) != 0 {
		t.Errorf("Expected no create request, got %+v", src.created)
	}
	if got := m.State().Draft.Message; got != "hello Gina\nmore" {
		t.Errorf("Expected a two-line message, got %q", got)
	}
}

func TestEnterInIncompleteFormRefuses(t *testing.T) {
	src := newFakeSource()
	m := NewContactsModel(context.Background(), src, nil)

	typeText(m, "Hal")
	press(m, keyEnter)

	if len(src.created) != 0 {
		t.Errorf("Expected no create request, got %+v", src.created)
	}
	if m.focus != focusAddress || !strings.Contains(m.View(), requiredHint) {
		t.Errorf("Expected the address field flagged, focus %d", m.focus)
	}
}

func TestFailedCreateKeepsDraft(t *testing.T) {
	src := newFakeSource()
	src.mutateErr = api.NewStatusError(api.OpCreate, 500, "boom")
	m := NewContactsModel(context.Background(), src, nil)

	fillForm(m, completeFields("Eve"))
	press(m, keyCtrlS)

	state := m.State()
	if state.Ops.Create.State != viewstate.OpFailed {
		t.Errorf("Expected failed create, got %s", state.Ops.Create.State)
	}
	if state.Draft.Name != "Eve" {
		t.Errorf("Draft was cleared after failure: %+v", state.Draft)
	}
	if src.lists != 0 {
		t.Errorf("Expected no reload after failure, got %d", src.lists)
	}
}

func TestUpdateSendsDraftWithCardID(t *testing.T) {
	src := newFakeSource("Bob")
	m := newLoadedModel(t, src)

	typeText(m, "Robert")
	press(m, keyShiftTab) // pages
	press(m, keyShiftTab) // cards
	if m.focus != focusCards {
		t.Fatalf("Expected card focus, got %d", m.focus)
	}
	typeText(m, "u")

	if len(src.updated) != 1 {
		t.Fatalf("Expected one update, got %+v", src.updated)
	}
	call := src.updated[0]
	if call.id != "id-Bob" {
		t.Errorf("Expected id-Bob, got %s", call.id)
	}
	// The stale draft is sent as-is, empty fields included.
	if call.fields != (models.ContactFields{Name: "Robert"}) {
		t.Errorf("Expected draft fields, got %+v", call.fields)
	}
	if !m.State().Draft.IsEmpty() {
		t.Errorf("Expected cleared draft, got %+v", m.State().Draft)
	}
	if m.State().Contacts[0].Name != "Robert" {
		t.Errorf("Expected reloaded contact, got %+v", m.State().Contacts[0])
	}
}

func TestDeleteSendsSelectedID(t *testing.T) {
	src := newFakeSource("Bob", "Alice")
	m := newLoadedModel(t, src)

	typeText(m, "keep")
	press(m, keyShiftTab)
	press(m, keyShiftTab)
	press(m, keyRight)
	press(m, tea.KeyMsg{Type: tea.KeyDelete})

	// Sorted A-Z the second card is Bob.
	if len(src.deleted) != 1 || src.deleted[0] != "id-Bob" {
		t.Fatalf("Expected delete of id-Bob, got %v", src.deleted)
	}
	state := m.State()
	if len(state.Contacts) != 1 || state.Contacts[0].Name != "Alice" {
		t.Errorf("Expected only Alice after reload, got %+v", state.Contacts)
	}
	if state.Draft.Name != "keep" {
		t.Errorf("Delete should not clear the draft, got %+v", state.Draft)
	}
	if m.selectedCard != 0 {
		t.Errorf("Expected selection clamped to 0, got %d", m.selectedCard)
	}
}

func TestFailedLoadKeepsCache(t *testing.T) {
	src := newFakeSource("Bob", "Alice")
	m := newLoadedModel(t, src)

	src.listErr = api.NewNetworkError("connection failed", errors.New("refused"))
	press(m, keyCtrlR)

	state := m.State()
	if len(state.Contacts) != 2 {
		t.Errorf("Failed load changed the cache: %+v", state.Contacts)
	}
	if state.Ops.List.State != viewstate.OpFailed {
		t.Errorf("Expected failed load, got %s", state.Ops.List.State)
	}
	if !strings.Contains(m.View(), "Could not reach the contacts server.") {
		t.Error("Expected the failure in the status line")
	}
}

func TestSortButtonAndPageJump(t *testing.T) {
	src := newFakeSource("a", "b", "c", "d", "e")
	m := newLoadedModel(t, src)

	press(m, keyShiftTab) // pages
	press(m, keyShiftTab) // cards
	press(m, keyShiftTab) // sort
	if m.focus != focusSort {
		t.Fatalf("Expected sort focus, got %d", m.focus)
	}

	press(m, keyEnter)
	if m.State().SortOrder != viewstate.SortDescending {
		t.Errorf("Expected descending order, got %s", m.State().SortOrder)
	}
	if !strings.Contains(m.View(), "Sort A-Z") {
		t.Error("Expected the button to offer A-Z")
	}

	typeText(m, "3")
	p := m.State().Project()
	if p.Page != 3 || len(p.Visible) != 1 || p.Visible[0].Name != "a" {
		t.Errorf("Expected page 3 with [a], got page %d %+v", p.Page, p.Visible)
	}

	// No page 9 button exists.
	typeText(m, "9")
	if m.State().Page != 3 {
		t.Errorf("Page changed to %d", m.State().Page)
	}
}

func TestPageButtons(t *testing.T) {
	src := newFakeSource("a", "b", "c")
	m := newLoadedModel(t, src)

	press(m, keyShiftTab)
	if m.focus != focusPages {
		t.Fatalf("Expected page focus, got %d", m.focus)
	}
	press(m, keyRight)
	press(m, keyEnter)

	if m.State().Page != 2 {
		t.Errorf("Expected page 2, got %d", m.State().Page)
	}
	if p := m.State().Project(); len(p.Visible) != 1 || p.Visible[0].Name != "c" {
		t.Errorf("Expected [c] on page 2, got %+v", p.Visible)
	}
}

func TestSearchKeepsPage(t *testing.T) {
	src := newFakeSource("Alice", "Bob", "Carol", "Dave")
	m := newLoadedModel(t, src)

	m.goToPage(2)
	for range 6 {
		press(m, keyTab)
	}
	if m.focus != focusSearch {
		t.Fatalf("Expected search focus, got %d", m.focus)
	}
	typeText(m, "a")

	state := m.State()
	if state.SearchTerm != "a" || state.Page != 2 {
		t.Errorf("Expected term a on page 2, got %q page %d", state.SearchTerm, state.Page)
	}
	// Alice, Carol, Dave match; page 2 holds Dave.
	if p := state.Project(); len(p.Visible) != 1 || p.Visible[0].Name != "Dave" {
		t.Errorf("Unexpected page 2: %+v", p.Visible)
	}
}

func TestEscClearsDraft(t *testing.T) {
	m := NewContactsModel(context.Background(), newFakeSource(), nil)

	typeText(m, "Alice")
	press(m, keyTab)
	typeText(m, "Road")
	press(m, keyEsc)

	if !m.State().Draft.IsEmpty() {
		t.Errorf("Expected cleared draft, got %+v", m.State().Draft)
	}
	if m.inputs[viewstate.FieldName].Value() != "" {
		t.Error("Expected the name input to be cleared")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := NewContactsModel(context.Background(), newFakeSource(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
