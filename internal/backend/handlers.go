package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"rhystmorgan/contactterm/internal/models"
)

type Contacts struct {
	Store        Store
	ErrorHandler func(context.Context, error)
}

// ContactBody is the request body of create. Every field must be present and
// non-empty.
type ContactBody struct {
	Name         string `json:"name"         minLength:"1" example:"Alice"`
	Address      string `json:"address"      minLength:"1" example:"1 Rd"`
	MobileNumber string `json:"mobileNumber" minLength:"1" example:"555"`
	Email        string `json:"email"        minLength:"1" example:"a@x.com"`
	Message      string `json:"message"      minLength:"1" example:"hi"`
}

func (b ContactBody) fields() models.ContactFields {
	return models.ContactFields{
		Name:         b.Name,
		Address:      b.Address,
		MobileNumber: b.MobileNumber,
		Email:        b.Email,
		Message:      b.Message,
	}
}

// ReplaceBody is the request body of replace. Every field must be present but
// may be empty; the record takes the values exactly as sent.
type ReplaceBody struct {
	Name         string `json:"name"         example:"Alice"`
	Address      string `json:"address"      example:"1 Rd"`
	MobileNumber string `json:"mobileNumber" example:"555"`
	Email        string `json:"email"        example:"a@x.com"`
	Message      string `json:"message"      example:"hi"`
}

func (b ReplaceBody) fields() models.ContactFields {
	return models.ContactFields(b)
}

type contactIDInput struct {
	ID string `path:"id" doc:"Identifier of the contact"`
}

type ContactsListOutput struct {
	Body []models.Contact
}

type ContactOutput struct {
	Body models.Contact
}

func (h *Contacts) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-contacts",
		Method:      http.MethodGet,
		Path:        "/contacts",
		Summary:     "List all contacts",
		Errors:      []int{http.StatusInternalServerError},
	}, withErrorHandler(h.list, h.ErrorHandler))

	huma.Register(api, huma.Operation{
		OperationID:   "create-contact",
		Method:        http.MethodPost,
		Path:          "/contacts",
		Summary:       "Create a contact",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, withErrorHandler(h.create, h.ErrorHandler))

	huma.Register(api, huma.Operation{
		OperationID: "get-contact",
		Method:      http.MethodGet,
		Path:        "/contacts/{id}",
		Summary:     "Get a contact",
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, withErrorHandler(h.get, h.ErrorHandler))

	huma.Register(api, huma.Operation{
		OperationID: "replace-contact",
		Method:      http.MethodPut,
		Path:        "/contacts/{id}",
		Summary:     "Replace a contact's fields",
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, withErrorHandler(h.replace, h.ErrorHandler))

	huma.Register(api, huma.Operation{
		OperationID: "delete-contact",
		Method:      http.MethodDelete,
		Path:        "/contacts/{id}",
		Summary:     "Delete a contact",
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, withErrorHandler(h.del, h.ErrorHandler))
}

func (h *Contacts) list(ctx context.Context, _ *struct{}) (*ContactsListOutput, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return &ContactsListOutput{Body: contacts}, nil
}

func (h *Contacts) create(ctx context.Context, input *struct {
	Body ContactBody
}) (*ContactOutput, error) {
	contact, err := h.Store.Create(ctx, input.Body.fields())
	if err != nil {
		return nil, err
	}
	return &ContactOutput{Body: contact}, nil
}

func (h *Contacts) get(ctx context.Context, input *contactIDInput) (*ContactOutput, error) {
	contact, err := h.Store.Get(ctx, input.ID)
	if err != nil {
		return nil, notFound(err)
	}
	return &ContactOutput{Body: contact}, nil
}

func (h *Contacts) replace(ctx context.Context, input *struct {
	ID   string `path:"id" doc:"Identifier of the contact"`
	Body ReplaceBody
}) (*ContactOutput, error) {
	contact, err := h.Store.Replace(ctx, input.ID, input.Body.fields())
	if err != nil {
		return nil, notFound(err)
	}
	return &ContactOutput{Body: contact}, nil
}

func (h *Contacts) del(ctx context.Context, input *contactIDInput) (*struct{}, error) {
	if err := h.Store.Delete(ctx, input.ID); err != nil {
		return nil, notFound(err)
	}
	return nil, nil
}

func notFound(err error) error {
	if errors.Is(err, ErrObjectNotFound) {
		return huma.Error404NotFound("id not found", err)
	}
	return err
}

// withErrorHandler reports every handler error to fn before huma turns it
// into a response.
func withErrorHandler[I, O any](
	handler func(context.Context, *I) (*O, error),
	fn func(context.Context, error),
) func(context.Context, *I) (*O, error) {
	if fn == nil {
		return handler
	}
	return func(ctx context.Context, input *I) (*O, error) {
		output, err := handler(ctx, input)
		if err != nil {
			fn(ctx, err)
		}
		return output, err
	}
}
