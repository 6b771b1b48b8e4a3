package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"gorm.io/gorm"
)

// DepotType distinguishes Alza warehouses from distribution depots
type DepotType string

const (
	DepotTypeWarehouse    DepotType = "WAREHOUSE"
	DepotTypeDistribution DepotType = "DISTRIBUTION"
)

// String returns the string representation of the depot type
func (t DepotType) String() string {
	return string(t)
}

// Valid checks if the depot type is valid
func (t DepotType) Valid() bool {
	switch t {
	case DepotTypeWarehouse, DepotTypeDistribution:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for DepotType
func (t *DepotType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = DepotType(v)
	case []byte:
		*t = DepotType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DepotType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for DepotType
func (t DepotType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid DepotType: %s", t)
	}
	return string(t), nil
}

// OperatorType identifies who operates a depot
type OperatorType string

const (
	OperatorTypeAlza    OperatorType = "ALZA"
	OperatorTypeCarrier OperatorType = "CARRIER"
)

// String returns the string representation of the operator type
func (t OperatorType) String() string {
	return string(t)
}

// Valid checks if the operator type is valid
func (t OperatorType) Valid() bool {
	switch t {
	case OperatorTypeAlza, OperatorTypeCarrier:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for OperatorType
func (t *OperatorType) Scan(value any) error {
	if value == nil {
		*t = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = OperatorType(v)
	case []byte:
		*t = OperatorType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into OperatorType", value)
	}
	return nil
}

// Value implements the driver.Valuer interface for OperatorType
func (t OperatorType) Value() (driver.Value, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid OperatorType: %s", t)
	}
	return string(t), nil
}

// Known warehouse location codes. Only WAREHOUSE depots carry one.
const (
	LocationCodeCZTC1 = "CZTC1"
	LocationCodeCZLC4 = "CZLC4"
)

// Depot represents a physical handling location resolved from plan uploads.
// ValidFrom only ever moves backward in time: a plan referencing the depot
// with an earlier effective date widens the known validity window.
type Depot struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	Code         string       `gorm:"size:20;not null;index:idx_depots_code" json:"code"`
	DepotType    DepotType    `gorm:"size:20;not null" json:"depot_type"`
	OperatorType OperatorType `gorm:"size:20;not null" json:"operator_type"`
	CarrierID    *uint        `gorm:"index:idx_depots_carrier_id" json:"carrier_id,omitempty"`
	LocationCode *string      `gorm:"size:10" json:"location_code,omitempty"`
	ValidFrom    *time.Time   `json:"valid_from,omitempty"`
	ValidTo      *time.Time   `json:"valid_to,omitempty"`
	CreatedAt    time.Time    `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`

	// Relations
	Carrier *Carrier `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
}

// TableName returns the table name for the model
func (Depot) TableName() string {
	return "depots"
}

// BeforeCreate is called before creating a new record
func (d *Depot) BeforeCreate(tx *gorm.DB) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (d *Depot) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	d.UpdatedAt = &now
	return nil
}

// DepotFilter represents filter criteria for depots
type DepotFilter struct {
	ID           *uint         `json:"id,omitempty"`
	Name         *string       `json:"name,omitempty"`
	Code         *string       `json:"code,omitempty"`
	DepotType    *DepotType    `json:"depot_type,omitempty"`
	OperatorType *OperatorType `json:"operator_type,omitempty"`
	CarrierID    *uint         `json:"carrier_id,omitempty"`
	LocationCode *string       `json:"location_code,omitempty"`
}
