package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dtos.UpdateProfileRequest) (*models.User, error)
	ListFavorites(ctx context.Context, userID uuid.UUID, pg repositories.Pagination) ([]*models.Property, int, error)
	ListActivity(ctx context.Context, userID uuid.UUID, pg repositories.Pagination) ([]*models.ActivityLog, int, error)
}

type userService struct {
	userRepo     repositories.UserRepository
	favoriteRepo repositories.FavoriteRepository
	activityRepo repositories.ActivityLogRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	favoriteRepo repositories.FavoriteRepository,
	activityRepo repositories.ActivityLogRepository,
) UserService {
	return &userService{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		activityRepo: activityRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "User not found",
		}
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dtos.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.Bio = req.Bio
	user.AvatarURL = req.AvatarURL

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) ListFavorites(ctx context.Context, userID uuid.UUID, pg repositories.Pagination) ([]*models.Property, int, error) {
	return s.favoriteRepo.ListByUserID(ctx, userID, pg)
}

func (s *userService) ListActivity(ctx context.Context, userID uuid.UUID, pg repositories.Pagination) ([]*models.ActivityLog, int, error) {
	return s.activityRepo.ListByUserID(ctx, userID, pg)
}
