package validation

import (
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
)

// ValidateCreateTransfer validates a transfer creation request.
//
// Required fields:
//   - holdingId, destinationPortfolioId, platformId: Must be valid UUIDs
//   - date: Must be in YYYY-MM-DD format
//   - quantity: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransfer(req request.CreateTransferRequest) error {
	if err := ValidateUUIDs([]string{req.HoldingID, req.DestinationPortfolioID, req.PlatformID}); err != nil {
		return err
	}

	errors := make(map[string]string)
	checkDate(errors, "date", req.Date)

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
