package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-funnel/internal/api/dto"
	"github.com/spec-kit/contact-funnel/internal/domain"
	"github.com/spec-kit/contact-funnel/internal/service"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// FormsHandler exposes form submission endpoints.
type FormsHandler struct {
	submissions *service.SubmissionService
}

// NewFormsHandler constructs handler.
func NewFormsHandler(submissionService *service.SubmissionService) *FormsHandler {
	return &FormsHandler{submissions: submissionService}
}

// Submit handles POST /api/forms/submit (public).
func (h *FormsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sub, err := h.submissions.Submit(c.Context(), submissionInput(req))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"message":      "form submitted successfully",
		"submissionId": sub.ID,
	})
}

// List handles GET /api/forms/submissions.
func (h *FormsHandler) List(c *fiber.Ctx) error {
	subs, err := h.submissions.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, dto.NewSubmissionResponse(&subs[i]))
	}
	return c.JSON(dto.ListSubmissionsResponse{
		Success:     true,
		Count:       len(items),
		Submissions: items,
	})
}

// Get handles GET /api/forms/submissions/:id.
func (h *FormsHandler) Get(c *fiber.Ctx) error {
	sub, err := h.submissions.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubmissionResponse(sub))
}

// Update handles PUT /api/forms/submissions/:id.
func (h *FormsHandler) Update(c *fiber.Ctx) error {
	var req dto.SubmitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sub, err := h.submissions.Update(c.Context(), c.Params("id"), submissionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSubmissionResponse(sub))
}

// Delete handles DELETE /api/forms/submissions/:id.
func (h *FormsHandler) Delete(c *fiber.Ctx) error {
	if err := h.submissions.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "submission removed"})
}

func submissionInput(req dto.SubmitFormRequest) service.SubmissionInput {
	return service.SubmissionInput{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		City:      req.City,
		Service:   req.Service,
		FormType:  domain.FormType(req.FormType),
	}
}
