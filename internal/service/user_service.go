package service

import (
	"context"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/rs/zerolog"
)

// UpdateUserInput carries a partial user update; nil fields are left alone.
type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserService is the user directory: CRUD with unique-email enforcement.
type UserService struct {
	users  domain.UserStore
	logger *zerolog.Logger
}

func NewUserService(users domain.UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Create(ctx context.Context, user models.User) (*models.User, error) {
	s.logger.Info().Str("email", user.Email).Msg("creating user")

	taken, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		s.logger.Warn().Str("email", user.Email).Msg("email already taken")
		return nil, conflict("email is already taken")
	}

	user.ID = 0
	if err := s.users.Save(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, userID int64, input UpdateUserInput) (*models.User, error) {
	s.logger.Info().Int64("user_id", userID).Msg("updating user")

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logger.Error().Int64("user_id", userID).Msg("user not found")
		return nil, notFound("user not found")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflict("email is already used by another user")
		}
		user.Email = *input.Email
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	s.logger.Info().Int64("user_id", userID).Msg("deleting user")

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		s.logger.Error().Int64("user_id", userID).Msg("attempt to delete missing user")
		return notFound("user not found")
	}
	return s.users.Delete(ctx, userID)
}
