package domain

import "time"

// FormType classifies inbound website forms.
type FormType string

const (
	FormTypeContact FormType = "contact"
	FormTypeQuote   FormType = "quote"
	FormTypeOther   FormType = "other"
)

// ValidFormType reports whether ft is a known form type.
func ValidFormType(ft FormType) bool {
	switch ft {
	case FormTypeContact, FormTypeQuote, FormTypeOther:
		return true
	}
	return false
}

// FormSubmission is a stored contact or quote form. Name and Email are
// always populated; everything else is optional.
type FormSubmission struct {
	ID        string
	Name      string
	Email     string
	Subject   *string
	Message   *string
	FirstName *string
	LastName  *string
	Mobile    *string
	City      *string
	Service   *string
	FormType  FormType
	CreatedAt time.Time
	UpdatedAt time.Time
}
