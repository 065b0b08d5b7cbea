package models

import "encoding/json"

// Contact is a record owned by the remote contact collection. The ID is
// assigned by the backend and never edited locally.
type Contact struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}

// ContactFields is the editable part of a contact, sent as the body of
// create and update requests.
type ContactFields struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobileNumber"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}

// UnmarshalJSON accepts both "_id" and "id" as the identifier key.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type plain Contact
	var wire struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*c = Contact(wire.plain)
	if c.ID == "" {
		c.ID = wire.AltID
	}
	return nil
}

func (c Contact) Fields() ContactFields {
	return ContactFields{
		Name:         c.Name,
		Address:      c.Address,
		MobileNumber: c.MobileNumber,
		Email:        c.Email,
		Message:      c.Message,
	}
}

func (f ContactFields) WithID(id string) Contact {
	return Contact{
		ID:           id,
		Name:         f.Name,
		Address:      f.Address,
		MobileNumber: f.MobileNumber,
		Email:        f.Email,
		Message:      f.Message,
	}
}

// MissingField reports the first required field left empty, or "" when all
// five are filled. Whitespace counts as filled.
func (f ContactFields) MissingField() string {
	switch {
	case f.Name == "":
		return "name"
	case f.Address == "":
		return "address"
	case f.MobileNumber == "":
		return "mobileNumber"
	case f.Email == "":
		return "email"
	case f.Message == "":
		return "message"
	}
	return ""
}
