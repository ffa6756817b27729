package server

import (
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/search?type={users|posts}&query=. Unknown types
// return an empty list rather than an error.
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return models.RespondError(c, models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c, 20)

	switch c.Query("type") {
	case "users":
		users, err := s.userService.SearchUsers(c.UserContext(), query, p.Limit, p.Offset)
		if err != nil {
			return models.RespondError(c, err)
		}
		if users == nil {
			users = []models.User{}
		}
		return c.Status(fiber.StatusOK).JSON(users)
	case "posts":
		posts, err := s.postService.SearchPosts(c.UserContext(), query, p.Limit, p.Offset)
		if err != nil {
			return models.RespondError(c, err)
		}
		if posts == nil {
			posts = []*models.Post{}
		}
		return c.Status(fiber.StatusOK).JSON(posts)
	default:
		return c.Status(fiber.StatusOK).JSON([]any{})
	}
}
