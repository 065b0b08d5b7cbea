package viewstate

import "rhystmorgan/contactterm/internal/models"

// Field identifies one of the five form inputs, in form order.
type Field int

const (
	FieldName Field = iota
	FieldAddress
	FieldMobileNumber
	FieldEmail
	FieldMessage
)

// FieldCount is the number of draft fields.
const FieldCount = 5

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldAddress:
		return "Address"
	case FieldMobileNumber:
		return "Mobile Number"
	case FieldEmail:
		return "Email"
	case FieldMessage:
		return "Message"
	default:
		return ""
	}
}

// FieldByKey maps a wire key ("mobileNumber") back to its field.
func FieldByKey(key string) (Field, bool) {
	switch key {
	case "name":
		return FieldName, true
	case "address":
		return FieldAddress, true
	case "mobileNumber":
		return FieldMobileNumber, true
	case "email":
		return FieldEmail, true
	case "message":
		return FieldMessage, true
	}
	return 0, false
}

// Draft holds the unsaved form values.
type Draft struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}

func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldAddress:
		return d.Address
	case FieldMobileNumber:
		return d.MobileNumber
	case FieldEmail:
		return d.Email
	case FieldMessage:
		return d.Message
	default:
		return ""
	}
}

func (d Draft) Set(f Field, value string) Draft {
	switch f {
	case FieldName:
		d.Name = value
	case FieldAddress:
		d.Address = value
	case FieldMobileNumber:
		d.MobileNumber = value
	case FieldEmail:
		d.Email = value
	case FieldMessage:
		d.Message = value
	}
	return d
}

func (d Draft) Fields() models.ContactFields {
	return models.ContactFields{
		Name:         d.Name,
		Address:      d.Address,
		MobileNumber: d.MobileNumber,
		Email:        d.Email,
		Message:      d.Message,
	}
}

// FirstMissing returns the first empty field, if any.
func (d Draft) FirstMissing() (Field, bool) {
	return FieldByKey(d.Fields().MissingField())
}

func (d Draft) IsEmpty() bool {
	return d == Draft{}
}
