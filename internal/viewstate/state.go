// Package viewstate holds the contact screen's state as a plain value.
// Every transition returns a new State; nothing here performs I/O.
package viewstate

import (
	"slices"

	"rhystmorgan/contactterm/internal/api"
	"rhystmorgan/contactterm/internal/models"
)

type OpState string

const (
	OpIdle      OpState = "idle"
	OpInFlight  OpState = "in_flight"
	OpSucceeded OpState = "succeeded"
	OpFailed    OpState = "failed"
)

// OpStatus is the last known outcome of one kind of request.
type OpStatus struct {
	State   OpState `json:"state"`
	Message string  `json:"message,omitempty"`
	Err     error   `json:"-"`
}

type Operations struct {
	List   OpStatus `json:"list"`
	Create OpStatus `json:"create"`
	Update OpStatus `json:"update"`
	Delete OpStatus `json:"delete"`
}

func (o Operations) Get(op api.Op) OpStatus {
	switch op {
	case api.OpList:
		return o.List
	case api.OpCreate:
		return o.Create
	case api.OpUpdate:
		return o.Update
	case api.OpDelete:
		return o.Delete
	default:
		return OpStatus{State: OpIdle}
	}
}

func (o Operations) with(op api.Op, status OpStatus) Operations {
	switch op {
	case api.OpList:
		o.List = status
	case api.OpCreate:
		o.Create = status
	case api.OpUpdate:
		o.Update = status
	case api.OpDelete:
		o.Delete = status
	}
	return o
}

type State struct {
	Draft      Draft            `json:"draft"`
	Contacts   []models.Contact `json:"contacts"`
	SearchTerm string           `json:"searchTerm"`
	SortOrder  SortOrder        `json:"sortOrder"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	Ops        Operations       `json:"ops"`
	InFlight   int              `json:"inFlight"`
}

func New() State {
	idle := OpStatus{State: OpIdle}
	return State{
		Contacts:  []models.Contact{},
		SortOrder: SortAscending,
		Page:      1,
		PageSize:  DefaultPageSize,
		Ops:       Operations{List: idle, Create: idle, Update: idle, Delete: idle},
	}
}

func (s State) SetField(f Field, value string) State {
	s.Draft = s.Draft.Set(f, value)
	return s
}

func (s State) ClearDraft() State {
	s.Draft = Draft{}
	return s
}

// LoadCollection replaces the cached collection wholesale.
func (s State) LoadCollection(contacts []models.Contact) State {
	if contacts == nil {
		contacts = []models.Contact{}
	}
	s.Contacts = slices.Clone(contacts)
	return s
}

// SetSearch changes the filter term. The current page is kept.
func (s State) SetSearch(term string) State {
	s.SearchTerm = term
	return s
}

// ToggleSort flips the order. The current page is kept, so it may end up
// past the last page.
func (s State) ToggleSort() State {
	s.SortOrder = s.SortOrder.Toggle()
	return s
}

func (s State) SetPage(page int) State {
	s.Page = page
	return s
}

// Begin marks op as in flight.
func (s State) Begin(op api.Op) State {
	s.Ops = s.Ops.with(op, OpStatus{State: OpInFlight})
	s.InFlight++
	return s
}

// Succeed marks op as done. The cached collection is not touched; callers
// follow a successful mutation with a reload.
func (s State) Succeed(op api.Op) State {
	s.Ops = s.Ops.with(op, OpStatus{State: OpSucceeded})
	return s.settle()
}

// Fail records err for op and leaves every other field as it was.
func (s State) Fail(op api.Op, err error) State {
	status := OpStatus{State: OpFailed, Err: err}
	if err != nil {
		status.Message = err.Error()
		if classified := api.ClassifyError(err); classified != nil {
			status.Message = classified.UserMessage()
		}
	}
	s.Ops = s.Ops.with(op, status)
	return s.settle()
}

func (s State) settle() State {
	if s.InFlight > 0 {
		s.InFlight--
	}
	return s
}

func (s State) Busy() bool {
	return s.InFlight > 0
}
