package dto

import "time"

// UploadPlanRequest carries the form fields of a plan upload. The xlsx file
// itself arrives as the multipart "file" part.
type UploadPlanRequest struct {
	CarrierID uint   `form:"carrier_id" validate:"required" example:"1"`
	ValidFrom string `form:"valid_from" validate:"required,datetime=2006-01-02" example:"2026-01-01"`
}

// UploadPlanResponse represents the result of a plan upload
type UploadPlanResponse struct {
	PlanID    uint      `json:"plan_id" example:"7"`
	CarrierID uint      `json:"carrier_id" example:"1"`
	ValidFrom time.Time `json:"valid_from" example:"2026-01-01T00:00:00Z"`
	RowCount  int       `json:"row_count" example:"42"`
}

// UploadContractRequest carries the form fields of a contract upload. The
// pdf file itself arrives as the multipart "file" part.
type UploadContractRequest struct {
	CarrierID        uint   `form:"carrier_id" validate:"required" example:"1"`
	ContractNumber   string `form:"contract_number" validate:"required,max=100" example:"SML-2026-014"`
	ConfigType       string `form:"config_type" validate:"required,oneof=distribution linehaul" example:"distribution"`
	ValidFrom        string `form:"valid_from" validate:"required,datetime=2006-01-02" example:"2026-01-01"`
	CounterpartyName string `form:"counterparty_name" validate:"omitempty,max=255" example:"Drivecool s.r.o."`
}

// UploadContractResponse represents the result of a contract upload
type UploadContractResponse struct {
	ContractID    uint `json:"contract_id" example:"3"`
	PriceConfigID uint `json:"price_config_id" example:"5"`
	FixRates      int  `json:"fix_rates" example:"3"`
	KmRates       int  `json:"km_rates" example:"1"`
	DepoRates     int  `json:"depo_rates" example:"2"`
	LinehaulRates int  `json:"linehaul_rates" example:"4"`
	BonusRates    int  `json:"bonus_rates" example:"4"`
}

// UploadProofRequest carries the form fields of a proof upload. The xlsx
// file itself arrives as the multipart "file" part.
type UploadProofRequest struct {
	CarrierID uint   `form:"carrier_id" validate:"required" example:"1"`
	Period    string `form:"period" validate:"required,len=7" example:"2026-01"`
}

// UploadProofResponse represents the result of a proof upload
type UploadProofResponse struct {
	ProofID     uint   `json:"proof_id" example:"9"`
	CarrierID   uint   `json:"carrier_id" example:"1"`
	Period      string `json:"period" example:"2026-01"`
	TotalAmount string `json:"total_amount" example:"1250340.50"`
}
