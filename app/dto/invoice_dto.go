package dto

import "time"

// RegisterInvoiceRequest represents the request payload for invoice registration
type RegisterInvoiceRequest struct {
	CarrierID     uint    `json:"carrier_id" validate:"required" example:"1"`
	InvoiceNumber string  `json:"invoice_number" validate:"required,max=100" example:"FA-2026-0042"`
	Period        string  `json:"period" validate:"required,len=7" example:"2026-01"`
	Amount        string  `json:"amount" validate:"required" example:"1250340.50"`
	IssuedAt      *string `json:"issued_at,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2026-02-03"`
}

// InvoiceInfo represents one invoice in API responses
type InvoiceInfo struct {
	ID            uint       `json:"id" example:"4"`
	CarrierID     uint       `json:"carrier_id" example:"1"`
	InvoiceNumber string     `json:"invoice_number" example:"FA-2026-0042"`
	Period        string     `json:"period" example:"2026-01"`
	Amount        string     `json:"amount" example:"1250340.50"`
	IssuedAt      *time.Time `json:"issued_at,omitempty" example:"2026-02-03T00:00:00Z"`
}
