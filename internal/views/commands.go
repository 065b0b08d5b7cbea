package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/contactterm/internal/api"
	"rhystmorgan/contactterm/internal/models"
)

// ContactSource is the remote contact collection. *api.Client implements it.
type ContactSource interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, fields models.ContactFields) error
	Update(ctx context.Context, id string, fields models.ContactFields) error
	Delete(ctx context.Context, id string) error
}

var _ ContactSource = (*api.Client)(nil)

// ContactsLoadedMsg carries the result of a full re-list.
type ContactsLoadedMsg struct {
	Contacts []models.Contact
	Err      error
}

// OpResultMsg carries the result of a create, update or delete.
type OpResultMsg struct {
	Op  api.Op
	ID  string
	Err error
}

func loadContacts(ctx context.Context, source ContactSource) tea.Cmd {
	return func() tea.Msg {
		contacts, err := source.List(ctx)
		return ContactsLoadedMsg{Contacts: contacts, Err: err}
	}
}

func createContact(ctx context.Context, source ContactSource, fields models.ContactFields) tea.Cmd {
	return func() tea.Msg {
		return OpResultMsg{Op: api.OpCreate, Err: source.Create(ctx, fields)}
	}
}

func updateContact(ctx context.Context, source ContactSource, id string, fields models.ContactFields) tea.Cmd {
	return func() tea.Msg {
		return OpResultMsg{Op: api.OpUpdate, ID: id, Err: source.Update(ctx, id, fields)}
	}
}

func deleteContact(ctx context.Context, source ContactSource, id string) tea.Cmd {
	return func() tea.Msg {
		return OpResultMsg{Op: api.OpDelete, ID: id, Err: source.Delete(ctx, id)}
	}
}
