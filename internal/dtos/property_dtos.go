package dtos

import "github.com/cribInquiries/LuxePropertyAnalysis/internal/models"

type CreatePropertyRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=255"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Address      string  `json:"address" validate:"required,min=1,max=255"`
	City         string  `json:"city" validate:"required,min=1,max=100"`
	State        string  `json:"state" validate:"required,min=1,max=50"`
	ZipCode      string  `json:"zip_code" validate:"required,min=1,max=20"`
	PropertyType string  `json:"property_type" validate:"required,oneof=house apartment condo townhouse villa"`
	Status       string  `json:"status" validate:"required,oneof=for_sale for_rent sold off_market"`
	Price        float64 `json:"price" validate:"gte=0"`
	Bedrooms     int     `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms    int     `json:"bathrooms" validate:"gte=0,lte=50"`
	Area         float64 `json:"area" validate:"gte=0"`
	IsFeatured   bool    `json:"is_featured"`
}

type UpdatePropertyRequest = CreatePropertyRequest

type PropertyListResponse struct {
	Properties []*models.Property `json:"properties"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
