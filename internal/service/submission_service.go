package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/contact-funnel/internal/domain"
	"github.com/spec-kit/contact-funnel/internal/events"
	"github.com/spec-kit/contact-funnel/internal/repository"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// SubmissionInput carries the fields of an inbound contact/quote form.
type SubmissionInput struct {
	Name      string
	Email     string
	Subject   *string
	Message   *string
	FirstName *string
	LastName  *string
	Mobile    *string
	City      *string
	Service   *string
	FormType  domain.FormType
}

// SubmissionService handles contact/quote form storage.
type SubmissionService struct {
	submissions repository.SubmissionRepository
	dispatcher  events.Dispatcher
}

// NewSubmissionService builds the service.
func NewSubmissionService(submissions repository.SubmissionRepository, dispatcher events.Dispatcher) *SubmissionService {
	return &SubmissionService{submissions: submissions, dispatcher: dispatcher}
}

// Submit validates and persists a form. The canonical name comes from the
// name field or, for quote forms, "First Last". Notifications ride the
// form_submitted event and never affect the outcome.
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) (*domain.FormSubmission, error) {
	name := deriveName(input)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}

	formType := input.FormType
	if formType == "" {
		formType = domain.FormTypeOther
	}
	if !domain.ValidFormType(formType) {
		return nil, apperrors.NewValidationError("invalid form type", map[string]any{"form_type": formType})
	}

	sub := &domain.FormSubmission{
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Subject:   input.Subject,
		Message:   input.Message,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Mobile:    input.Mobile,
		City:      input.City,
		Service:   input.Service,
		FormType:  formType,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventFormSubmitted, events.FormSubmittedPayload{
			SubmissionID: sub.ID,
			Name:         sub.Name,
			Email:        sub.Email,
			FormType:     sub.FormType,
			Subject:      sub.Subject,
			Message:      sub.Message,
			Mobile:       sub.Mobile,
			City:         sub.City,
			Service:      sub.Service,
		}))
	}
	return sub, nil
}

// List returns all submissions newest-first.
func (s *SubmissionService) List(ctx context.Context) ([]domain.FormSubmission, error) {
	return s.submissions.List(ctx)
}

// Get fetches one submission. A malformed identifier reads as not found.
func (s *SubmissionService) Get(ctx context.Context, id string) (*domain.FormSubmission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("submission", nil)
	}
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("submission", nil)
		}
		return nil, err
	}
	return sub, nil
}

// Update applies a partial change to a stored submission.
func (s *SubmissionService) Update(ctx context.Context, id string, input SubmissionInput) (*domain.FormSubmission, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := deriveName(input); name != "" {
		sub.Name = name
	}
	if strings.TrimSpace(input.Email) != "" {
		sub.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if input.Subject != nil {
		sub.Subject = input.Subject
	}
	if input.Message != nil {
		sub.Message = input.Message
	}
	if input.FirstName != nil {
		sub.FirstName = input.FirstName
	}
	if input.LastName != nil {
		sub.LastName = input.LastName
	}
	if input.Mobile != nil {
		sub.Mobile = input.Mobile
	}
	if input.City != nil {
		sub.City = input.City
	}
	if input.Service != nil {
		sub.Service = input.Service
	}
	if input.FormType != "" {
		if !domain.ValidFormType(input.FormType) {
			return nil, apperrors.NewValidationError("invalid form type", map[string]any{"form_type": input.FormType})
		}
		sub.FormType = input.FormType
	}

	if err := s.submissions.Update(ctx, sub); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("submission", nil)
		}
		return nil, err
	}
	return sub, nil
}

// Delete removes a stored submission.
func (s *SubmissionService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("submission", nil)
	}
	if err := s.submissions.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("submission", nil)
		}
		return err
	}
	return nil
}

func deriveName(input SubmissionInput) string {
	if name := strings.TrimSpace(input.Name); name != "" {
		return name
	}
	var first, last string
	if input.FirstName != nil {
		first = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		last = strings.TrimSpace(*input.LastName)
	}
	if first == "" {
		return ""
	}
	return strings.TrimSpace(first + " " + last)
}
