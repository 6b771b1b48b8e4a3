package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"gorm.io/gorm"
)

// Route represents a named transportation lane. The name is the identity
// key; the region tag is derived once at creation from the trailing
// single-letter suffix convention ("Moravskoslezsko A" -> "Moravskoslezsko").
type Route struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null;uniqueIndex:uk_routes_name" json:"name"`
	Region    *string    `gorm:"size:255;index:idx_routes_region" json:"region,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the model
func (Route) TableName() string {
	return "routes"
}

// BeforeCreate is called before creating a new record
func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (r *Route) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	r.UpdatedAt = &now
	return nil
}

// RouteFilter represents filter criteria for routes
type RouteFilter struct {
	ID       *uint   `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Region   *string `json:"region,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
