package dto

import (
	"time"

	"github.com/spec-kit/contact-funnel/internal/domain"
)

// SubmitFormRequest payload for contact/quote forms. Either name or
// firstName must be present alongside email.
type SubmitFormRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Subject   *string `json:"subject"`
	Message   *string `json:"message"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Mobile    *string `json:"mobile"`
	City      *string `json:"city"`
	Service   *string `json:"service"`
	FormType  string  `json:"formType"`
}

// SubmissionResponse is the stored shape of a form submission.
type SubmissionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject,omitempty"`
	Message   *string   `json:"message,omitempty"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Mobile    *string   `json:"mobile,omitempty"`
	City      *string   `json:"city,omitempty"`
	Service   *string   `json:"service,omitempty"`
	FormType  string    `json:"formType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSubmissionResponse maps a domain submission.
func NewSubmissionResponse(sub *domain.FormSubmission) SubmissionResponse {
	return SubmissionResponse{
		ID:        sub.ID,
		Name:      sub.Name,
		Email:     sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Mobile:    sub.Mobile,
		City:      sub.City,
		Service:   sub.Service,
		FormType:  string(sub.FormType),
		CreatedAt: sub.CreatedAt,
		UpdatedAt: sub.UpdatedAt,
	}
}

// ListSubmissionsResponse wraps the submissions collection.
type ListSubmissionsResponse struct {
	Success     bool                 `json:"success"`
	Count       int                  `json:"count"`
	Submissions []SubmissionResponse `json:"submissions"`
}
