package service

import (
	"strings"

	"bookstop/internal/httpapi/models"
	"bookstop/internal/httpapi/repository"
	"bookstop/internal/middleware/auth"
)

// UserService covers profile reads and the password-gated account
// mutations. Every mutation re-verifies the password even though the
// caller already holds a valid token.
type UserService interface {
	GetUser(id string) (*models.User, error)
	UpdateUsername(id, newUsername, password string) (*models.User, error)
	ChangePassword(id, currentPassword, newPassword string) error
	DeleteUser(id, password string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateUsername(id, newUsername, password string) (*models.User, error) {
	newUsername = strings.TrimSpace(newUsername)
	if len(newUsername) < 3 || len(newUsername) > 30 {
		return nil, NewValidationError("username must be between 3 and 30 characters")
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.Username = newUsername
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(id, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return ErrUserNotFound
	}

	if err := auth.VerifyPassword(user.Password, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Save(user)
}

func (s *userService) DeleteUser(id, password string) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return ErrUserNotFound
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return ErrInvalidCredentials
	}

	return s.userRepo.Delete(id)
}
