package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/user/.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUser handles GET /api/user/:id.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateUser handles PUT /api/user/:id. Self-or-admin.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}
	in.ActorID, in.ActorIsAdmin = identity(c)
	in.TargetID = id

	user, err := s.userService.UpdateUser(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// DeleteUser handles DELETE /api/user/delete/:id. Self-or-admin. Deleting the
// own account also clears the identity cookie.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID, actorIsAdmin := identity(c)
	if err := s.userService.DeleteUser(c.UserContext(), actorID, actorIsAdmin, id); err != nil {
		return models.RespondError(c, err)
	}

	if actorID == id {
		s.clearTokenCookie(c)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted",
	})
}

// PromoteUser handles PUT /api/user/promote/:id. Admin only.
func (s *Server) PromoteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID, actorIsAdmin := identity(c)
	promote := true
	user, err := s.userService.UpdateUser(c.UserContext(), service.UpdateUserInput{
		ActorID:      actorID,
		ActorIsAdmin: actorIsAdmin,
		TargetID:     id,
		IsAdmin:      &promote,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
