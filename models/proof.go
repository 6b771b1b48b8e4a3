package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Proof is one carrier's monthly proof-of-service submission. It is keyed by
// (carrier, period); re-uploading the same period replaces the prior proof
// and all of its detail rows.
type Proof struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_proofs_uuid" json:"uuid"`
	CarrierID      uint       `gorm:"not null;uniqueIndex:uk_proofs_carrier_period" json:"carrier_id"`
	Period         string     `gorm:"size:7;not null;uniqueIndex:uk_proofs_carrier_period" json:"period"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	FixAmount      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"fix_amount"`
	KmAmount       decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"km_amount"`
	LinehaulAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"linehaul_amount"`
	DepoAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"depo_amount"`
	BonusAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"bonus_amount"`
	SourceFilename *string    `gorm:"size:255" json:"source_filename,omitempty"`
	CreatedAt      time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	// Relations
	Carrier         *Carrier              `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
	RouteDetails    []ProofRouteDetail    `gorm:"foreignKey:ProofID" json:"route_details,omitempty"`
	LinehaulDetails []ProofLinehaulDetail `gorm:"foreignKey:ProofID" json:"linehaul_details,omitempty"`
	DepoDetails     []ProofDepoDetail     `gorm:"foreignKey:ProofID" json:"depo_details,omitempty"`
	DailyDetails    []ProofDailyDetail    `gorm:"foreignKey:ProofID" json:"daily_details,omitempty"`
}

// TableName returns the table name for the model
func (Proof) TableName() string {
	return "proofs"
}

// BeforeCreate is called before creating a new record
func (p *Proof) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// ProofRouteDetail is one per-route-type line item from the summary sheet
type ProofRouteDetail struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProofID   uint            `gorm:"not null;index:idx_proof_route_details_proof_id" json:"proof_id"`
	RouteType string          `gorm:"size:100;not null" json:"route_type"`
	Count     int             `gorm:"not null;default:0" json:"count"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
}

// TableName returns the table name for the model
func (ProofRouteDetail) TableName() string { return "proof_route_details" }

// ProofLinehaulDetail is one linehaul line item from the summary sheet
type ProofLinehaulDetail struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	ProofID  uint            `gorm:"not null;index:idx_proof_linehaul_details_proof_id" json:"proof_id"`
	Label    string          `gorm:"size:100;not null" json:"label"`
	FromCode *string         `gorm:"size:20" json:"from_code,omitempty"`
	Count    int             `gorm:"not null;default:0" json:"count"`
	Amount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
}

// TableName returns the table name for the model
func (ProofLinehaulDetail) TableName() string { return "proof_linehaul_details" }

// ProofDepoDetail is one depot-related line item from the summary sheet
type ProofDepoDetail struct {
	ID      uint            `gorm:"primaryKey" json:"id"`
	ProofID uint            `gorm:"not null;index:idx_proof_depo_details_proof_id" json:"proof_id"`
	Label   string          `gorm:"size:100;not null" json:"label"`
	Count   int             `gorm:"not null;default:0" json:"count"`
	Amount  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount"`
}

// TableName returns the table name for the model
func (ProofDepoDetail) TableName() string { return "proof_depo_details" }

// ProofDailyDetail is one day of the daily breakdown, per depot when the
// source sheet distinguishes depots. A nil DepotCode row carries the grand
// total computed as the sum across depot bands.
type ProofDailyDetail struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProofID    uint            `gorm:"not null;index:idx_proof_daily_details_proof_id" json:"proof_id"`
	Date       time.Time       `gorm:"not null" json:"date"`
	DepotCode  *string         `gorm:"size:20" json:"depot_code,omitempty"`
	RouteCount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"route_count"`
	Kilometers decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"kilometers"`
}

// TableName returns the table name for the model
func (ProofDailyDetail) TableName() string { return "proof_daily_details" }

// ProofFilter represents filter criteria for proofs
type ProofFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	CarrierID *uint      `json:"carrier_id,omitempty"`
	Period    *string    `json:"period,omitempty"`
}
