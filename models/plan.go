package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransportPlan is one uploaded route plan for a carrier, effective from a
// given date. Its rows drive depot/route identity resolution and the
// assignment histories.
type TransportPlan struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_transport_plans_uuid" json:"uuid"`
	CarrierID      uint       `gorm:"not null;index:idx_transport_plans_carrier_id" json:"carrier_id"`
	ValidFrom      time.Time  `gorm:"not null" json:"valid_from"`
	SourceFilename *string    `gorm:"size:255" json:"source_filename,omitempty"`
	CreatedAt      time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	// Relations
	Carrier *Carrier       `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
	Rows    []PlanRouteRow `gorm:"foreignKey:PlanID" json:"rows,omitempty"`
}

// TableName returns the table name for the model
func (TransportPlan) TableName() string {
	return "transport_plans"
}

// BeforeCreate is called before creating a new record
func (p *TransportPlan) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = utils.UTCNow()
	}
	return nil
}

// PlanRouteRow is one parsed row of an uploaded plan: the raw strings plus
// planned volumes, with resolved identities attached after ingestion.
type PlanRouteRow struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PlanID        uint            `gorm:"not null;index:idx_plan_route_rows_plan_id" json:"plan_id"`
	RouteName     string          `gorm:"size:255;not null" json:"route_name"`
	StartLocation string          `gorm:"size:255;not null" json:"start_location"`
	RouteType     string          `gorm:"size:100;not null" json:"route_type"`
	PlannedCount  int             `gorm:"not null;default:0" json:"planned_count"`
	PlannedKm     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"planned_km"`
	RouteID       *uint           `gorm:"index:idx_plan_route_rows_route_id" json:"route_id,omitempty"`
	DepotID       *uint           `json:"depot_id,omitempty"`

	// Relations
	Route *Route `gorm:"foreignKey:RouteID;references:ID" json:"route,omitempty"`
}

// TableName returns the table name for the model
func (PlanRouteRow) TableName() string {
	return "plan_route_rows"
}

// TransportPlanFilter represents filter criteria for transport plans
type TransportPlanFilter struct {
	ID        *uint      `json:"id,omitempty"`
	UUID      *uuid.UUID `json:"uuid,omitempty"`
	CarrierID *uint      `json:"carrier_id,omitempty"`
}
