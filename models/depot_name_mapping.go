package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"gorm.io/gorm"
)

// DepotNameMapping binds one raw start-location string, exactly as it
// appears in uploaded plans after trimming, to a depot identity. A raw
// string maps to one depot forever; repointing is not supported.
type DepotNameMapping struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RawName   string    `gorm:"size:255;not null;uniqueIndex:uk_depot_name_mappings_raw_name" json:"raw_name"`
	DepotID   uint      `gorm:"not null;index:idx_depot_name_mappings_depot_id" json:"depot_id"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Depot *Depot `gorm:"foreignKey:DepotID;references:ID" json:"depot,omitempty"`
}

// TableName returns the table name for the model
func (DepotNameMapping) TableName() string {
	return "depot_name_mappings"
}

// BeforeCreate is called before creating a new record
func (m *DepotNameMapping) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utils.UTCNow()
	}
	return nil
}

// DepotNameMappingFilter represents filter criteria for depot name mappings
type DepotNameMappingFilter struct {
	ID      *uint   `json:"id,omitempty"`
	RawName *string `json:"raw_name,omitempty"`
	DepotID *uint   `json:"depot_id,omitempty"`
}
