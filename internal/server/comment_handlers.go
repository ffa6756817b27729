package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/comment/:postId, listing a post's comments.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetPostComments(c.UserContext(), postID, s.optionalUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(comments)
}

// CreateComment handles POST /api/comment/:postId.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	userID, _ := identity(c)
	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: body.Content,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/comment/:id. Admin, comment owner or parent
// post owner.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	actorID, actorIsAdmin := identity(c)
	comment, err := s.commentService.UpdateComment(c.UserContext(), actorID, actorIsAdmin, id, body.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(comment)
}

// DeleteComment handles DELETE /api/comment/:id. Admin, comment owner or
// parent post owner.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	actorID, actorIsAdmin := identity(c)
	if err := s.commentService.DeleteComment(c.UserContext(), actorID, actorIsAdmin, id); err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Comment deleted",
	})
}

// LikeComment handles POST /api/comment/like/:commentId, toggling the
// caller's like.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	userID, _ := identity(c)
	comment, err := s.commentService.ToggleLike(c.UserContext(), userID, commentID)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(comment)
}
