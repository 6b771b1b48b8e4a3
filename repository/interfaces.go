// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for internal users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

// UserSessionRepository defines operations for user sessions
type UserSessionRepository interface {
	Repository[models.UserSession, models.UserSessionFilter]
	ByToken(ctx context.Context, token string) (*models.UserSession, error)
	Revoke(ctx context.Context, token string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// CarrierRepository defines operations for carriers
type CarrierRepository interface {
	Repository[models.Carrier, models.CarrierFilter]
	ByName(ctx context.Context, name string) (*models.Carrier, error)
	ByCanonicalName(ctx context.Context, canonicalName string) (*models.Carrier, error)
	ListActive(ctx context.Context) ([]*models.Carrier, error)
}

// ContractRepository defines operations for contracts
type ContractRepository interface {
	Repository[models.Contract, models.ContractFilter]
	ByContractNumber(ctx context.Context, number string) (*models.Contract, error)
}

// DepotRepository defines operations for depots
type DepotRepository interface {
	Repository[models.Depot, models.DepotFilter]
	ByCode(ctx context.Context, code string) (*models.Depot, error)
	WidenValidFrom(ctx context.Context, depotID uint, validFrom time.Time) error
}

// DepotNameMappingRepository defines operations for depot name mappings
type DepotNameMappingRepository interface {
	Repository[models.DepotNameMapping, models.DepotNameMappingFilter]
	ByRawName(ctx context.Context, rawName string) (*models.DepotNameMapping, error)
}

// RouteRepository defines operations for routes
type RouteRepository interface {
	Repository[models.Route, models.RouteFilter]
	ByName(ctx context.Context, name string) (*models.Route, error)
}

// AssignmentInterval is the dimension-neutral view of one history row, used
// by the assignment history manager so the depot and carrier dimensions
// share a single implementation.
type AssignmentInterval struct {
	ID        uint
	RouteID   uint
	TargetID  uint
	ValidFrom time.Time
	ValidTo   *time.Time
	CreatedAt time.Time
}

// AssignmentHistoryRepository is the dimension-neutral store behind one
// history table (route→depot or route→carrier).
type AssignmentHistoryRepository interface {
	// OpenByRoute returns the open (valid_to IS NULL) intervals for a route,
	// most recently created first.
	OpenByRoute(ctx context.Context, routeID uint) ([]*AssignmentInterval, error)
	// ByRoute returns all intervals for a route, most recently created first.
	ByRoute(ctx context.Context, routeID uint) ([]*AssignmentInterval, error)
	// CloseInterval sets valid_to on one interval.
	CloseInterval(ctx context.Context, id uint, validTo time.Time) error
	// OpenInterval inserts a new open interval.
	OpenInterval(ctx context.Context, routeID, targetID uint, validFrom time.Time) error
}

// PriceConfigRepository defines operations for price configs and rate rows
type PriceConfigRepository interface {
	Repository[models.PriceConfig, models.PriceConfigFilter]
	// ActiveForDate returns the active config whose validity window contains
	// the date, ties broken by latest ValidFrom, or nil when none matches.
	ActiveForDate(ctx context.Context, carrierID uint, configType models.PriceConfigType, date time.Time) (*models.PriceConfig, error)
	// LoadRates populates the rate-row relations of a config.
	LoadRates(ctx context.Context, config *models.PriceConfig) error
	// Deactivate clears the active flag on every config of the carrier/type.
	Deactivate(ctx context.Context, carrierID uint, configType models.PriceConfigType) error
}

// TransportPlanRepository defines operations for transport plans
type TransportPlanRepository interface {
	Repository[models.TransportPlan, models.TransportPlanFilter]
	SaveRows(ctx context.Context, rows []*models.PlanRouteRow) error
	RowsForCarrierPeriod(ctx context.Context, carrierID uint, from, to time.Time) ([]*models.PlanRouteRow, error)
}

// ProofRepository defines operations for proofs
type ProofRepository interface {
	Repository[models.Proof, models.ProofFilter]
	ByCarrierAndPeriod(ctx context.Context, carrierID uint, period string) (*models.Proof, error)
	// DeleteWithDetails removes a proof and all of its detail rows.
	DeleteWithDetails(ctx context.Context, proofID uint) error
	SaveRouteDetails(ctx context.Context, rows []*models.ProofRouteDetail) error
	SaveLinehaulDetails(ctx context.Context, rows []*models.ProofLinehaulDetail) error
	SaveDepoDetails(ctx context.Context, rows []*models.ProofDepoDetail) error
	SaveDailyDetails(ctx context.Context, rows []*models.ProofDailyDetail) error
	LoadDetails(ctx context.Context, proof *models.Proof) error
}

// InvoiceRepository defines operations for invoices
type InvoiceRepository interface {
	Repository[models.Invoice, models.InvoiceFilter]
	ByInvoiceNumber(ctx context.Context, number string) (*models.Invoice, error)
	ByCarrierAndPeriod(ctx context.Context, carrierID uint, period string) (*models.Invoice, error)
}
