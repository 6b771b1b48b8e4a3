package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is one carrier-issued invoice for a billing period; its amount is
// what reconciliation compares against the computed expected billing.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_invoices_uuid" json:"uuid"`
	CarrierID     uint            `gorm:"not null;index:idx_invoices_carrier_id" json:"carrier_id"`
	InvoiceNumber string          `gorm:"size:100;not null;uniqueIndex:uk_invoices_invoice_number" json:"invoice_number"`
	Period        string          `gorm:"size:7;not null;index:idx_invoices_period" json:"period"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	IssuedAt      *time.Time      `json:"issued_at,omitempty"`
	CreatedAt     time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`

	// Relations
	Carrier *Carrier `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
}

// TableName returns the table name for the model
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate is called before creating a new record
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == uuid.Nil {
		i.UUID = uuid.New()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (i *Invoice) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	i.UpdatedAt = &now
	return nil
}

// InvoiceFilter represents filter criteria for invoices
type InvoiceFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	CarrierID     *uint      `json:"carrier_id,omitempty"`
	InvoiceNumber *string    `json:"invoice_number,omitempty"`
	Period        *string    `json:"period,omitempty"`
}
