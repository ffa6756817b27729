package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/post/.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, err := s.postService.ListPosts(c.UserContext(), p.Limit, p.Offset, s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetUserPosts handles GET /api/post/all/:id, listing one user's posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.GetUserPosts(c.UserContext(), userID, p.Limit, p.Offset, s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// GetPost handles GET /api/post/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// CreatePost handles POST /api/post/.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Image   string `json:"image"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	userID, _ := identity(c)
	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  userID,
		Title:   body.Title,
		Content: body.Content,
		Image:   body.Image,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/post/:id. Owner-or-admin.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var in service.UpdatePostInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}
	in.ActorID, in.ActorIsAdmin = identity(c)
	in.PostID = id

	post, err := s.postService.UpdatePost(c.UserContext(), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

// DeletePost handles DELETE /api/post/delete/:id. Owner-or-admin.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID, actorIsAdmin := identity(c)
	if err := s.postService.DeletePost(c.UserContext(), actorID, actorIsAdmin, id); err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// LikePost handles POST /api/post/like/:id, toggling the caller's like.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID, _ := identity(c)
	post, err := s.postService.ToggleLike(c.UserContext(), userID, id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}
