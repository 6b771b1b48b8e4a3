package businessflow

import (
	"context"
	"strings"

	"github.com/JakubKrejcir/alza-cost-control/app/dto"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
)

// CarrierFlow manages the carrier registry feeding the upload flows.
type CarrierFlow interface {
	CreateCarrier(ctx context.Context, request *dto.CreateCarrierRequest) (*models.Carrier, error)
	ListCarriers(ctx context.Context) ([]*models.Carrier, error)
	GetCarrier(ctx context.Context, id uint) (*models.Carrier, error)
}

// CarrierFlowImpl implements the carrier management flow
type CarrierFlowImpl struct {
	carrierRepo repository.CarrierRepository
}

// NewCarrierFlow creates a new carrier flow instance
func NewCarrierFlow(carrierRepo repository.CarrierRepository) CarrierFlow {
	return &CarrierFlowImpl{carrierRepo: carrierRepo}
}

func (cf *CarrierFlowImpl) CreateCarrier(ctx context.Context, request *dto.CreateCarrierRequest) (*models.Carrier, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, NewBusinessError("CARRIER_NAME_REQUIRED", "Carrier name is required", ErrCarrierNameRequired)
	}

	canonical := CanonicalName(name)
	existing, err := cf.carrierRepo.ByCanonicalName(ctx, canonical)
	if err != nil {
		return nil, NewBusinessError("CARRIER_CREATE_FAILED", "Carrier creation failed", err)
	}
	if existing != nil {
		return nil, NewBusinessError("CARRIER_ALREADY_EXISTS", "Carrier already exists", ErrCarrierAlreadyExists)
	}

	carrier := &models.Carrier{
		Name:          name,
		CanonicalName: canonical,
		ICO:           request.ICO,
		IsActive:      true,
	}
	if err := cf.carrierRepo.Save(ctx, carrier); err != nil {
		return nil, NewBusinessError("CARRIER_CREATE_FAILED", "Carrier creation failed", err)
	}
	return carrier, nil
}

func (cf *CarrierFlowImpl) ListCarriers(ctx context.Context) ([]*models.Carrier, error) {
	carriers, err := cf.carrierRepo.ListActive(ctx)
	if err != nil {
		return nil, NewBusinessError("CARRIER_LIST_FAILED", "Carrier listing failed", err)
	}
	return carriers, nil
}

func (cf *CarrierFlowImpl) GetCarrier(ctx context.Context, id uint) (*models.Carrier, error) {
	carrier, err := cf.carrierRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CARRIER_LOOKUP_FAILED", "Carrier lookup failed", err)
	}
	if carrier == nil {
		return nil, NewBusinessError("CARRIER_NOT_FOUND", "Carrier not found", ErrCarrierNotFound)
	}
	return carrier, nil
}
