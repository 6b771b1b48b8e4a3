package models

import (
	"time"

	"github.com/JakubKrejcir/alza-cost-control/utils"
	"gorm.io/gorm"
)

// RouteDepotHistory is a time-bounded interval binding a route to the depot
// it departs from. A nil ValidTo marks the current assignment; the
// assignment history manager keeps at most one open interval per route.
type RouteDepotHistory struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	RouteID   uint       `gorm:"not null;index:idx_route_depot_history_route_id" json:"route_id"`
	DepotID   uint       `gorm:"not null;index:idx_route_depot_history_depot_id" json:"depot_id"`
	ValidFrom time.Time  `gorm:"not null" json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to,omitempty"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Route *Route `gorm:"foreignKey:RouteID;references:ID" json:"route,omitempty"`
	Depot *Depot `gorm:"foreignKey:DepotID;references:ID" json:"depot,omitempty"`
}

// TableName returns the table name for the model
func (RouteDepotHistory) TableName() string {
	return "route_depot_history"
}

// BeforeCreate is called before creating a new record
func (h *RouteDepotHistory) BeforeCreate(tx *gorm.DB) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = utils.UTCNow()
	}
	return nil
}

// RouteCarrierHistory is a time-bounded interval binding a route to the
// carrier operating it. Shape and invariants match RouteDepotHistory.
type RouteCarrierHistory struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	RouteID   uint       `gorm:"not null;index:idx_route_carrier_history_route_id" json:"route_id"`
	CarrierID uint       `gorm:"not null;index:idx_route_carrier_history_carrier_id" json:"carrier_id"`
	ValidFrom time.Time  `gorm:"not null" json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to,omitempty"`
	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	// Relations
	Route   *Route   `gorm:"foreignKey:RouteID;references:ID" json:"route,omitempty"`
	Carrier *Carrier `gorm:"foreignKey:CarrierID;references:ID" json:"carrier,omitempty"`
}

// TableName returns the table name for the model
func (RouteCarrierHistory) TableName() string {
	return "route_carrier_history"
}

// BeforeCreate is called before creating a new record
func (h *RouteCarrierHistory) BeforeCreate(tx *gorm.DB) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = utils.UTCNow()
	}
	return nil
}
