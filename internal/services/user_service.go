package services

import (
	"context"
	"errors"
	"fmt"

	apperrors "ihome-rentals/internal/errors"
	"ihome-rentals/internal/models"
	"ihome-rentals/internal/repositories"
	"ihome-rentals/pkg/logger"
)

type UserService struct {
	repo        repositories.UserRepository
	imagePrefix string
}

func NewUserService(repo repositories.UserRepository, imagePrefix string) *UserService {
	return &UserService{repo: repo, imagePrefix: imagePrefix}
}

// Profile returns the public profile of the authenticated user.
func (s *UserService) Profile(ctx context.Context, actorID int64) (*models.UserProfile, error) {
	user, err := s.repo.FindByID(ctx, actorID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewNoDataError(fmt.Sprintf("user %d not found", actorID), err)
	}
	if err != nil {
		logger.GlobalLogger.Errorf("user lookup failed: user_id=%d err=%v", actorID, err)
		return nil, apperrors.NewDBError("failed to query user", err)
	}

	profile := &models.UserProfile{
		UserID: user.ID,
		Name:   user.Name,
		Mobile: user.Mobile,
	}
	if user.AvatarURL != "" {
		profile.AvatarURL = s.imagePrefix + user.AvatarURL
	}
	return profile, nil
}
