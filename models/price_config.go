package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceConfigType distinguishes the kind of rate bundle a config carries
type PriceConfigType string

const (
	PriceConfigTypeDistribution PriceConfigType = "distribution"
	PriceConfigTypeLinehaul     PriceConfigType = "linehaul"
)

// String returns the string representation of the config type
func (t PriceConfigType) String() string {
	return string(t)
}

// Valid checks if the config type is valid
func (t PriceConfigType) Valid() bool {
	switch t {
	case PriceConfigTypeDistribution, PriceConfigTypeLinehaul:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for PriceConfigType
func (t *PriceConfigType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = PriceConfigType(v)
	case []byte:
		*t = PriceConfigType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into PriceConfigType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for PriceConfigType
func (t PriceConfigType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid PriceConfigType: %s", t)
	}
	return string(t), nil
}

// VehicleType classifies linehaul vehicles
type VehicleType string

const (
	VehicleTypeCanvas VehicleType = "canvas"
	VehicleTypeSolo   VehicleType = "solo"
	VehicleTypeTruck  VehicleType = "truck"
)

// Valid checks if the vehicle type is valid
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCanvas, VehicleTypeSolo, VehicleTypeTruck:
		return true
	default:
		return false
	}
}

// PriceConfig is a versioned, carrier-scoped bundle of rate rows. Multiple
// versions may exist per carrier and type; the active one for a date is the
// config whose window contains the date and whose active flag is set, ties
// broken by the latest ValidFrom.
type PriceConfig struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UUID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_price_configs_uuid" json:"uuid"`
	CarrierID  uint            `gorm:"not null;index:idx_price_configs_carrier_id" json:"carrier_id"`
	ContractID *uint           `gorm:"index:idx_price_configs_contract_id" json:"contract_id,omitempty"`
	Type       PriceConfigType `gorm:"size:20;not null" json:"type"`
	ValidFrom  time.Time       `gorm:"not null;index:idx_price_configs_valid_from" json:"valid_from"`
	ValidTo    *time.Time      `json:"valid_to,omitempty"`
	IsActive   bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`

	// Relations
	Carrier       *Carrier       `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
	Contract      *Contract      `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
	FixRates      []FixRate      `gorm:"foreignKey:PriceConfigID" json:"fix_rates,omitempty"`
	KmRates       []KmRate       `gorm:"foreignKey:PriceConfigID" json:"km_rates,omitempty"`
	DepoRates     []DepoRate     `gorm:"foreignKey:PriceConfigID" json:"depo_rates,omitempty"`
	LinehaulRates []LinehaulRate `gorm:"foreignKey:PriceConfigID" json:"linehaul_rates,omitempty"`
	BonusRates    []BonusRate    `gorm:"foreignKey:PriceConfigID" json:"bonus_rates,omitempty"`
}

// TableName returns the table name for the model
func (PriceConfig) TableName() string {
	return "price_configs"
}

// BeforeCreate is called before creating a new record
func (p *PriceConfig) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (p *PriceConfig) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	p.UpdatedAt = &now
	return nil
}

// Covers reports whether the config's validity window contains the date.
func (p *PriceConfig) Covers(date time.Time) bool {
	if date.Before(p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && date.After(*p.ValidTo) {
		return false
	}
	return true
}

// PriceConfigFilter represents filter criteria for price configs
type PriceConfigFilter struct {
	ID        *uint            `json:"id,omitempty"`
	UUID      *uuid.UUID       `json:"uuid,omitempty"`
	CarrierID *uint            `json:"carrier_id,omitempty"`
	Type      *PriceConfigType `json:"type,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

// FixRate is a per-dispatch fixed price for one route type
type FixRate struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PriceConfigID uint            `gorm:"not null;index:idx_fix_rates_price_config_id" json:"price_config_id"`
	RouteType     string          `gorm:"size:100;not null" json:"route_type"`
	Rate          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
}

// TableName returns the table name for the model
func (FixRate) TableName() string { return "fix_rates" }

// KmRate is a per-kilometer price
type KmRate struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PriceConfigID uint            `gorm:"not null;index:idx_km_rates_price_config_id" json:"price_config_id"`
	Rate          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
}

// TableName returns the table name for the model
func (KmRate) TableName() string { return "km_rates" }

// DepoRate is a monthly depot holding or rental price
type DepoRate struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PriceConfigID uint            `gorm:"not null;index:idx_depo_rates_price_config_id" json:"price_config_id"`
	Kind          string          `gorm:"size:50;not null" json:"kind"`
	Rate          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
}

// TableName returns the table name for the model
func (DepoRate) TableName() string { return "depo_rates" }

// LinehaulRate prices one sorting-center transfer leg for a vehicle type
type LinehaulRate struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PriceConfigID uint            `gorm:"not null;index:idx_linehaul_rates_price_config_id" json:"price_config_id"`
	FromCode      string          `gorm:"size:20;not null" json:"from_code"`
	ToCode        string          `gorm:"size:20;not null" json:"to_code"`
	VehicleType   VehicleType     `gorm:"size:20;not null" json:"vehicle_type"`
	Rate          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"rate"`
}

// TableName returns the table name for the model
func (LinehaulRate) TableName() string { return "linehaul_rates" }

// BonusRate is one band of the quality-bonus ladder. MaxPercent is nil for
// the open-ended top band.
type BonusRate struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	PriceConfigID uint             `gorm:"not null;index:idx_bonus_rates_price_config_id" json:"price_config_id"`
	MinPercent    decimal.Decimal  `gorm:"type:decimal(5,2);not null" json:"min_percent"`
	MaxPercent    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"max_percent,omitempty"`
	Amount        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"amount"`
}

// TableName returns the table name for the model
func (BonusRate) TableName() string { return "bonus_rates" }
