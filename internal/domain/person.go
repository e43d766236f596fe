// Package domain contains the core data types for the Pessoas API.
// It is imported by every other internal package (repo, service, handler).
package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Field limits for a Person. Lengths are counted in characters, not bytes.
const (
	MaxNicknameLength = 32
	MaxNameLength     = 100
	MaxTagLength      = 32

	// SearchLimit caps the number of rows returned by a search.
	SearchLimit = 50
)

// Client-facing validation messages, one per rejected field.
const (
	MsgInvalidNickname  = "Apelido inválido."
	MsgInvalidName      = "Nome inválido."
	MsgInvalidBirthDate = "Nascimento inválido."
	MsgInvalidTags      = "Stack inválido."
	MsgTagsNotList      = "Stack deve ser uma lista de strings."
)

// Person is a registered individual. Tags is nil when none were supplied.
type Person struct {
	ID        uuid.UUID
	Nickname  string
	Name      string
	BirthDate time.Time
	Tags      []string
}

// Field identifies a PersonInput field by its JSON key.
type Field string

// Person fields, listed in the order Validate checks them.
const (
	FieldNickname  Field = "apelido"
	FieldName      Field = "nome"
	FieldBirthDate Field = "nascimento"
	FieldTags      Field = "stack"
)

// PersonInput is the payload of a create request after JSON decoding.
// Pointer fields are nil when the key was absent or null.
// Malformed holds the message for each field whose value had the wrong type;
// such a field is left unset.
type PersonInput struct {
	Nickname  *string
	Name      *string
	BirthDate *string
	Tags      []string
	Malformed map[Field]string
}

// NewPerson is a validated record ready to be inserted.
// BirthDate is kept in the submitted form; the database parses it.
type NewPerson struct {
	ID        uuid.UUID
	Nickname  string
	Name      string
	BirthDate string
	Tags      []string
}

// Validate checks the input field by field and returns a *ValidationError
// for the first field that fails. A malformed field fails with its recorded
// message at its own place in the order. The birth date is only checked for
// presence; its format is enforced by the date column.
func (in PersonInput) Validate() error {
	checks := []struct {
		field   Field
		value   any
		rules   []validation.Rule
		message string
	}{
		{FieldNickname, in.Nickname, []validation.Rule{validation.NotNil, validation.RuneLength(0, MaxNicknameLength)}, MsgInvalidNickname},
		{FieldName, in.Name, []validation.Rule{validation.NotNil, validation.RuneLength(0, MaxNameLength)}, MsgInvalidName},
		{FieldBirthDate, in.BirthDate, []validation.Rule{validation.NotNil}, MsgInvalidBirthDate},
		{FieldTags, in.Tags, []validation.Rule{validation.Each(validation.RuneLength(0, MaxTagLength))}, MsgInvalidTags},
	}

	for _, c := range checks {
		if msg, ok := in.Malformed[c.field]; ok {
			return NewValidationError(msg)
		}
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return NewValidationError(c.message)
		}
	}
	return nil
}

// WithID builds the insert record for a validated input.
// An empty tag list is treated the same as no tags.
func (in PersonInput) WithID(id uuid.UUID) NewPerson {
	p := NewPerson{ID: id}
	if in.Nickname != nil {
		p.Nickname = *in.Nickname
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.BirthDate != nil {
		p.BirthDate = *in.BirthDate
	}
	if len(in.Tags) > 0 {
		p.Tags = append([]string(nil), in.Tags...)
	}
	return p
}
