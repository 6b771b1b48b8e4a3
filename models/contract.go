package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract represents one signed carrier contract document. The priced line
// items extracted from its text live in the PriceConfig created alongside.
type Contract struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UUID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_contracts_uuid" json:"uuid"`
	CarrierID        uint       `gorm:"not null;index:idx_contracts_carrier_id" json:"carrier_id"`
	ContractNumber   string     `gorm:"size:100;not null;uniqueIndex:uk_contracts_contract_number" json:"contract_number"`
	CounterpartyName string     `gorm:"size:255;not null" json:"counterparty_name"`
	SignedAt         time.Time  `gorm:"not null" json:"signed_at"`
	SourceFilename   *string    `gorm:"size:255" json:"source_filename,omitempty"`
	CreatedAt        time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`

	// Relations
	Carrier *Carrier `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
}

// TableName returns the table name for the model
func (Contract) TableName() string {
	return "contracts"
}

// BeforeCreate is called before creating a new record
func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Contract) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// ContractFilter represents filter criteria for contracts
type ContractFilter struct {
	ID             *uint      `json:"id,omitempty"`
	UUID           *uuid.UUID `json:"uuid,omitempty"`
	CarrierID      *uint      `json:"carrier_id,omitempty"`
	ContractNumber *string    `json:"contract_number,omitempty"`
}
