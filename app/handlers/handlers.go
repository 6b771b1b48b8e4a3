// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// carrierPeriodParams reads the carrier_id and period path parameters shared
// by the proof and reconciliation endpoints.
func carrierPeriodParams(c fiber.Ctx) (uint, string, error) {
	carrierID, err := strconv.ParseUint(c.Params("carrier_id"), 10, 64)
	if err != nil || carrierID == 0 {
		return 0, "", errors.New("carrier_id must be a positive integer")
	}
	period := c.Params("period")
	if period == "" {
		return 0, "", errors.New("period is required")
	}
	return uint(carrierID), period, nil
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "datetime":
		return err.Field() + " must be a date in " + err.Param() + " format"
	default:
		return err.Field() + " is invalid"
	}
}
