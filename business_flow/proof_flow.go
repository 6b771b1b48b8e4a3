package businessflow

import (
	"context"

	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/JakubKrejcir/alza-cost-control/utils"
	"gorm.io/gorm"
)

// ProofFlow stores carriers' monthly proof-of-service workbooks. A proof is
// keyed by (carrier, period); re-uploading replaces the previous submission
// entirely.
type ProofFlow interface {
	UploadProof(ctx context.Context, carrierID uint, period string, wb Workbook, filename string) (*models.Proof, error)
	// GetProof loads a proof with all detail rows.
	GetProof(ctx context.Context, carrierID uint, period string) (*models.Proof, error)
}

// ProofFlowImpl implements the proof upload flow
type ProofFlowImpl struct {
	proofRepo   repository.ProofRepository
	carrierRepo repository.CarrierRepository
	db          *gorm.DB
}

// NewProofFlow creates a new proof flow instance
func NewProofFlow(
	proofRepo repository.ProofRepository,
	carrierRepo repository.CarrierRepository,
	db *gorm.DB,
) ProofFlow {
	return &ProofFlowImpl{
		proofRepo:   proofRepo,
		carrierRepo: carrierRepo,
		db:          db,
	}
}

func (pf *ProofFlowImpl) UploadProof(ctx context.Context, carrierID uint, period string, wb Workbook, filename string) (*models.Proof, error) {
	if _, err := utils.ParsePeriod(period); err != nil {
		return nil, NewBusinessError("PERIOD_INVALID", "Period must be in YYYY-MM form", ErrPeriodInvalid)
	}

	carrier, err := pf.carrierRepo.ByID(ctx, carrierID)
	if err != nil {
		return nil, NewBusinessError("PROOF_UPLOAD_FAILED", "Proof upload failed", err)
	}
	if carrier == nil {
		return nil, NewBusinessError("CARRIER_NOT_FOUND", "Carrier not found", ErrCarrierNotFound)
	}

	data, err := ParseProofWorkbook(wb)
	if err != nil {
		return nil, NewBusinessError("PROOF_PARSE_FAILED", "Proof workbook could not be parsed", err)
	}

	proof := &models.Proof{
		CarrierID:      carrierID,
		Period:         period,
		TotalAmount:    data.TotalAmount,
		FixAmount:      data.FixAmount,
		KmAmount:       data.KmAmount,
		LinehaulAmount: data.LinehaulAmount,
		DepoAmount:     data.DepoAmount,
		BonusAmount:    data.BonusAmount,
	}
	if filename != "" {
		proof.SourceFilename = &filename
	}

	err = repository.WithTransaction(ctx, pf.db, func(txCtx context.Context) error {
		existing, err := pf.proofRepo.ByCarrierAndPeriod(txCtx, carrierID, period)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := pf.proofRepo.DeleteWithDetails(txCtx, existing.ID); err != nil {
				return err
			}
		}

		if err := pf.proofRepo.Save(txCtx, proof); err != nil {
			return err
		}

		for i := range data.RouteDetails {
			data.RouteDetails[i].ProofID = proof.ID
		}
		for i := range data.LinehaulDetails {
			data.LinehaulDetails[i].ProofID = proof.ID
		}
		for i := range data.DepoDetails {
			data.DepoDetails[i].ProofID = proof.ID
		}
		for i := range data.DailyDetails {
			data.DailyDetails[i].ProofID = proof.ID
		}

		if err := pf.proofRepo.SaveRouteDetails(txCtx, toPtrs(data.RouteDetails)); err != nil {
			return err
		}
		if err := pf.proofRepo.SaveLinehaulDetails(txCtx, toPtrs(data.LinehaulDetails)); err != nil {
			return err
		}
		if err := pf.proofRepo.SaveDepoDetails(txCtx, toPtrs(data.DepoDetails)); err != nil {
			return err
		}
		return pf.proofRepo.SaveDailyDetails(txCtx, toPtrs(data.DailyDetails))
	})
	if err != nil {
		return nil, NewBusinessError("PROOF_UPLOAD_FAILED", "Proof upload failed", err)
	}

	return proof, nil
}

func (pf *ProofFlowImpl) GetProof(ctx context.Context, carrierID uint, period string) (*models.Proof, error) {
	proof, err := pf.proofRepo.ByCarrierAndPeriod(ctx, carrierID, period)
	if err != nil {
		return nil, NewBusinessError("PROOF_LOOKUP_FAILED", "Proof lookup failed", err)
	}
	if proof == nil {
		return nil, NewBusinessError("PROOF_NOT_FOUND", "Proof not found", ErrProofNotFound)
	}
	if err := pf.proofRepo.LoadDetails(ctx, proof); err != nil {
		return nil, NewBusinessError("PROOF_LOOKUP_FAILED", "Proof lookup failed", err)
	}
	return proof, nil
}

func toPtrs[T any](items []T) []*T {
	ptrs := make([]*T, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	return ptrs
}
