package dto

import "time"

// CreateCarrierRequest represents the request payload for carrier creation
type CreateCarrierRequest struct {
	Name string  `json:"name" validate:"required,min=2,max=255" example:"Drivecool s.r.o."`
	ICO  *string `json:"ico,omitempty" validate:"omitempty,len=8,numeric" example:"12345678"`
}

// CarrierInfo represents one carrier in API responses
type CarrierInfo struct {
	ID        uint      `json:"id" example:"1"`
	UUID      string    `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string    `json:"name" example:"Drivecool s.r.o."`
	ICO       *string   `json:"ico,omitempty" example:"12345678"`
	IsActive  bool      `json:"is_active" example:"true"`
	CreatedAt time.Time `json:"created_at" example:"2026-01-15T10:30:00Z"`
}
