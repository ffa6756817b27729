// Package service contains the business logic of the application.
package service

import (
	"context"
	"strings"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account lifecycle and credential checks.
type UserService struct {
	userRepo repository.UserRepository
}

// SignupInput is the payload for registering a new account.
type SignupInput struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

// UpdateUserInput carries a partial profile update. Pointer fields distinguish
// "not sent" from "sent empty".
type UpdateUserInput struct {
	ActorID      uint
	ActorIsAdmin bool
	TargetID     uint
	FirstName    *string `json:"firstname"`
	LastName     *string `json:"lastname"`
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	IsAdmin      *bool   `json:"is_admin"`
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup validates the payload, hashes the password and stores the account.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.FirstName == "" || in.LastName == "" {
		return nil, models.NewValidationError("firstname and lastname are required")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hash),
		IsAdmin:   in.IsAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the email/password pair and returns the account on
// success. A missing account and a wrong password report the same error so
// callers cannot probe for registered emails.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("unknown_email").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// UpdateUser applies a partial update. Only the account owner or an admin may
// update, and only admins may change the admin flag.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.ActorID != in.TargetID && !in.ActorIsAdmin {
		return nil, models.NewForbiddenError("You can only update your own account")
	}

	fields := map[string]interface{}{}
	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return nil, models.NewValidationError("firstname cannot be empty")
		}
		fields["firstname"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			return nil, models.NewValidationError("lastname cannot be empty")
		}
		fields["lastname"] = strings.TrimSpace(*in.LastName)
	}
	if in.Username != nil {
		if err := validation.ValidateUsername(strings.TrimSpace(*in.Username)); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["username"] = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(strings.TrimSpace(*in.Email)); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["email"] = strings.TrimSpace(*in.Email)
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		fields["password"] = string(hash)
	}
	if in.IsAdmin != nil {
		if !in.ActorIsAdmin {
			return nil, models.NewForbiddenError("Only admins can change the admin flag")
		}
		fields["is_admin"] = *in.IsAdmin
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}
	return s.userRepo.UpdateFields(ctx, in.TargetID, fields)
}

// DeleteUser removes the account. Only the owner or an admin may delete.
func (s *UserService) DeleteUser(ctx context.Context, actorID uint, actorIsAdmin bool, targetID uint) error {
	if actorID != targetID && !actorIsAdmin {
		return models.NewForbiddenError("You can only delete your own account")
	}
	return s.userRepo.Delete(ctx, targetID)
}

// IsAdmin reports whether the account has the admin flag. Passed into other
// services as their admin check.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
