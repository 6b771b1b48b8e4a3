package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/JakubKrejcir/alza-cost-control/app/services"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"gorm.io/gorm"
)

// UploadContractRequest carries one contract PDF and its metadata.
type UploadContractRequest struct {
	CarrierID        uint
	ContractNumber   string
	ConfigType       models.PriceConfigType
	ValidFrom        time.Time
	CounterpartyName string
	PDFContent       []byte
	Filename         string
}

// ContractFlow registers carrier contracts: the PDF text is extracted, the
// counterparty is validated against the carrier, priced line items are
// extracted and stored as a new active price config version.
type ContractFlow interface {
	UploadContract(ctx context.Context, request *UploadContractRequest) (*models.Contract, *models.PriceConfig, error)
}

// ContractFlowImpl implements the contract upload flow
type ContractFlowImpl struct {
	contractRepo    repository.ContractRepository
	carrierRepo     repository.CarrierRepository
	priceConfigRepo repository.PriceConfigRepository
	textReader      services.DocumentTextReader
	db              *gorm.DB
}

// NewContractFlow creates a new contract flow instance
func NewContractFlow(
	contractRepo repository.ContractRepository,
	carrierRepo repository.CarrierRepository,
	priceConfigRepo repository.PriceConfigRepository,
	textReader services.DocumentTextReader,
	db *gorm.DB,
) ContractFlow {
	return &ContractFlowImpl{
		contractRepo:    contractRepo,
		carrierRepo:     carrierRepo,
		priceConfigRepo: priceConfigRepo,
		textReader:      textReader,
		db:              db,
	}
}

func (cf *ContractFlowImpl) UploadContract(ctx context.Context, request *UploadContractRequest) (*models.Contract, *models.PriceConfig, error) {
	if strings.TrimSpace(request.ContractNumber) == "" {
		return nil, nil, NewBusinessError("CONTRACT_NUMBER_REQUIRED", "Contract number is required", ErrContractNumberRequired)
	}
	if request.ValidFrom.IsZero() {
		return nil, nil, NewBusinessError("CONTRACT_VALID_FROM_REQUIRED", "Contract validity start is required", ErrContractValidFromRequired)
	}

	carrier, err := cf.carrierRepo.ByID(ctx, request.CarrierID)
	if err != nil {
		return nil, nil, NewBusinessError("CONTRACT_UPLOAD_FAILED", "Contract upload failed", err)
	}
	if carrier == nil {
		return nil, nil, NewBusinessError("CARRIER_NOT_FOUND", "Carrier not found", ErrCarrierNotFound)
	}

	existing, err := cf.contractRepo.ByContractNumber(ctx, request.ContractNumber)
	if err != nil {
		return nil, nil, NewBusinessError("CONTRACT_UPLOAD_FAILED", "Contract upload failed", err)
	}
	if existing != nil {
		return nil, nil, NewBusinessError("DUPLICATE_CONTRACT_NUMBER", "Contract number already exists", ErrDuplicateContractNumber)
	}

	text, err := cf.textReader.ExtractText(request.PDFContent)
	if err != nil {
		return nil, nil, NewBusinessError("CONTRACT_UPLOAD_FAILED", "Contract text extraction failed", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, NewBusinessError("CONTRACT_TEXT_EMPTY", "Contract text is empty", ErrContractTextEmpty)
	}

	counterparty := strings.TrimSpace(request.CounterpartyName)
	if counterparty == "" {
		counterparty = detectCounterparty(text)
	}
	if !cf.counterpartyMatches(counterparty, carrier, text) {
		return nil, nil, NewBusinessError("COUNTERPARTY_MISMATCH", "Contract counterparty does not match the carrier", ErrCounterpartyMismatch)
	}

	bundle := ExtractRates(text)
	if bundle.Empty() {
		return nil, nil, NewBusinessError("NO_RATES_EXTRACTED", "No price rates could be extracted from the contract", ErrNoRatesExtracted)
	}

	contract := &models.Contract{
		CarrierID:        request.CarrierID,
		ContractNumber:   strings.TrimSpace(request.ContractNumber),
		CounterpartyName: counterparty,
		SignedAt:         request.ValidFrom,
	}
	if request.Filename != "" {
		contract.SourceFilename = &request.Filename
	}

	config := &models.PriceConfig{
		CarrierID: request.CarrierID,
		Type:      request.ConfigType,
		ValidFrom: request.ValidFrom,
		IsActive:  true,
	}

	err = repository.WithTransaction(ctx, cf.db, func(txCtx context.Context) error {
		if err := cf.contractRepo.Save(txCtx, contract); err != nil {
			return err
		}

		// Previous versions of the same carrier/type bundle stop being
		// active; the new config supersedes them.
		if err := cf.priceConfigRepo.Deactivate(txCtx, request.CarrierID, request.ConfigType); err != nil {
			return err
		}

		config.ContractID = &contract.ID
		config.FixRates = bundle.FixRates
		config.KmRates = bundle.KmRates
		config.DepoRates = bundle.DepoRates
		config.LinehaulRates = bundle.LinehaulRates
		config.BonusRates = bundle.BonusRates
		return cf.priceConfigRepo.Save(txCtx, config)
	})
	if err != nil {
		return nil, nil, NewBusinessError("CONTRACT_UPLOAD_FAILED", "Contract upload failed", err)
	}

	return contract, config, nil
}

// counterpartyMatches accepts the contract when the detected counterparty
// canonically equals the carrier, or when the carrier's canonical name
// occurs anywhere in the canonicalized contract text.
func (cf *ContractFlowImpl) counterpartyMatches(counterparty string, carrier *models.Carrier, text string) bool {
	if counterparty != "" && SameOrganization(counterparty, carrier.Name) {
		return true
	}
	carrierKey := CanonicalName(carrier.Name)
	return carrierKey != "" && strings.Contains(CanonicalName(text), carrierKey)
}

// detectCounterparty scans the contract text for the first line that carries
// a legal-entity designator.
func detectCounterparty(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := stripDiacritics(strings.ToLower(trimmed))
		for _, suffix := range legalSuffixes {
			if strings.Contains(lower, suffix) {
				return trimmed
			}
		}
	}
	return ""
}
