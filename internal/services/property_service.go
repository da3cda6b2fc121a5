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

type PropertyService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreatePropertyRequest) (*models.Property, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Property, error)
	List(ctx context.Context, f repositories.PropertyFilters, pg repositories.Pagination) ([]*models.Property, int, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, pg repositories.Pagination) ([]*models.Property, int, error)
	Update(ctx context.Context, requester Requester, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, requester Requester, id uuid.UUID) error
	ToggleFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	favoriteRepo repositories.FavoriteRepository
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	favoriteRepo repositories.FavoriteRepository,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		favoriteRepo: favoriteRepo,
	}
}

func errPropertyNotFound() error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    "Property not found",
	}
}

func (s *propertyService) Create(ctx context.Context, ownerID uuid.UUID, req dtos.CreatePropertyRequest) (*models.Property, error) {
	p := &models.Property{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		PropertyType: req.PropertyType,
		Status:       req.Status,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		IsActive:     true,
		IsFeatured:   req.IsFeatured,
	}
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return s.propertyRepo.GetByID(ctx, p.ID)
}

// GetByID bumps the view counter unless the viewer owns the listing.
func (s *propertyService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPropertyNotFound()
	}

	if viewerID == nil || *viewerID != p.OwnerID {
		if vErr := s.propertyRepo.IncrementViews(ctx, id); vErr != nil {
			utils.Logger.WithError(vErr).Warn("view counter update failed")
		} else {
			p.Views++
		}
	}
	return p, nil
}

func (s *propertyService) List(ctx context.Context, f repositories.PropertyFilters, pg repositories.Pagination) ([]*models.Property, int, error) {
	return s.propertyRepo.List(ctx, f, pg)
}

func (s *propertyService) ListMine(ctx context.Context, ownerID uuid.UUID, pg repositories.Pagination) ([]*models.Property, int, error) {
	return s.propertyRepo.List(ctx, repositories.PropertyFilters{OwnerID: &ownerID}, pg)
}

func (s *propertyService) Update(ctx context.Context, requester Requester, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	p, err := s.loadOwned(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	p.Title = req.Title
	p.Description = req.Description
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	p.ZipCode = req.ZipCode
	p.PropertyType = req.PropertyType
	p.Status = req.Status
	p.Price = req.Price
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.Area = req.Area
	p.IsFeatured = req.IsFeatured

	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) Delete(ctx context.Context, requester Requester, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, requester, id); err != nil {
		return err
	}
	return s.propertyRepo.SoftDelete(ctx, id)
}

// ToggleFavorite flips the favorite state and reports the new value.
func (s *propertyService) ToggleFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	p, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, errPropertyNotFound()
	}

	favorited, err := s.favoriteRepo.Exists(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}
	if favorited {
		return false, s.favoriteRepo.Remove(ctx, userID, propertyID)
	}
	return true, s.favoriteRepo.Add(ctx, userID, propertyID)
}

func (s *propertyService) loadOwned(ctx context.Context, requester Requester, id uuid.UUID) (*models.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPropertyNotFound()
	}
	if p.OwnerID != requester.UserID && !requester.isAdmin() {
		return nil, &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeForbidden,
			Message:    "You do not own this property",
		}
	}
	return p, nil
}
