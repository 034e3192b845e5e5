package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/contact-funnel/internal/config"
	"github.com/spec-kit/contact-funnel/internal/events"
	"github.com/spec-kit/contact-funnel/internal/mail"
	"github.com/spec-kit/contact-funnel/internal/worker"
)

// NotificationService turns domain events into outbound emails. Delivery
// runs on the worker pool; a failure is logged and never reaches the
// request that triggered it.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	pool       *worker.Pool
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, pool *worker.Pool, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		pool:       pool,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserSignedUp, n.handleUserSignedUp)
	n.dispatcher.Subscribe(events.EventFormSubmitted, n.handleFormSubmitted)
}

func (n *NotificationService) handleUserSignedUp(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserSignedUpPayload)
	if !ok {
		n.logger.Warn("unexpected payload for user_signed_up", zap.String("event_id", event.ID))
		return nil
	}

	msg, err := mail.WelcomeMessage(payload.FullName, payload.Email)
	if err != nil {
		n.logger.Error("building welcome email failed", zap.Error(err))
		return nil
	}
	n.enqueue("welcome email to "+payload.Email, msg)
	return nil
}

func (n *NotificationService) handleFormSubmitted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.FormSubmittedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for form_submitted", zap.String("event_id", event.ID))
		return nil
	}

	msg, err := mail.ThankYouMessage(payload.Name, payload.Email)
	if err != nil {
		n.logger.Error("building thank-you email failed", zap.Error(err))
	} else {
		n.enqueue("thank-you email to "+payload.Email, msg)
	}

	if n.cfg.AdminEmail == "" {
		return nil
	}

	fields := []mail.AdminSummaryField{
		{Label: "Name", Value: payload.Name},
		{Label: "Email", Value: payload.Email},
	}
	fields = appendField(fields, "Subject", payload.Subject)
	fields = appendField(fields, "Mobile", payload.Mobile)
	fields = appendField(fields, "City", payload.City)
	fields = appendField(fields, "Service", payload.Service)
	fields = appendField(fields, "Message", payload.Message)
	fields = append(fields, mail.AdminSummaryField{Label: "Form Type", Value: string(payload.FormType)})

	admin := mail.AdminSummaryMessage(n.cfg.AdminEmail, string(payload.FormType), fields)
	n.enqueue(fmt.Sprintf("admin notification for submission %s", payload.SubmissionID), admin)
	return nil
}

func (n *NotificationService) enqueue(description string, msg mail.Message) {
	if n.pool == nil || n.sender == nil {
		return
	}
	n.pool.Enqueue(worker.NewJob(description, func(ctx context.Context) error {
		return n.sender.Send(ctx, msg)
	}))
}

func appendField(fields []mail.AdminSummaryField, label string, value *string) []mail.AdminSummaryField {
	if value == nil || *value == "" {
		return fields
	}
	return append(fields, mail.AdminSummaryField{Label: label, Value: *value})
}
