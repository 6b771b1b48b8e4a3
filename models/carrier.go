// Package models contains the database entities for the cost control system
package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Carrier represents a transportation company under contract
type Carrier struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_carriers_uuid" json:"uuid"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	CanonicalName string     `gorm:"size:255;not null;index:idx_carriers_canonical_name" json:"canonical_name"`
	ICO           *string    `gorm:"size:20" json:"ico,omitempty"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// TableName returns the table name for the model
func (Carrier) TableName() string {
	return "carriers"
}

// BeforeCreate is called before creating a new record
func (c *Carrier) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Carrier) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// CarrierFilter represents filter criteria for carriers
type CarrierFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	Name          *string    `json:"name,omitempty"`
	CanonicalName *string    `json:"canonical_name,omitempty"`
	ICO           *string    `json:"ico,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}
