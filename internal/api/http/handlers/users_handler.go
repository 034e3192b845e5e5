package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/contact-funnel/internal/api/dto"
	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/service"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// UsersHandler exposes account CRUD endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /api/auth/users (admin only).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// Get handles GET /api/auth/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update handles PUT /api/auth/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token, authorization denied")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.Context(),
		service.Caller{UserID: claims.UserID},
		c.Params("id"),
		service.UserUpdateInput{FullName: req.FullName, Email: req.Email, Password: req.Password},
	)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /api/auth/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token, authorization denied")
	}

	if err := h.users.Delete(c.Context(),
		service.Caller{UserID: claims.UserID},
		c.Params("id"),
	); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "user removed"})
}
