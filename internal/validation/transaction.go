package validation

import (
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
)

// ValidateCreateBuy validates a buy creation request.
//
// Required fields:
//   - platformId, assetId, portfolioId: Must be valid UUIDs
//   - date: Must be in YYYY-MM-DD format
//   - quantity: Must be positive
//   - price: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateBuy(req request.CreateBuyRequest) error {
	if err := ValidateUUIDs([]string{req.PlatformID, req.AssetID, req.PortfolioID}); err != nil {
		return err
	}

	errors := make(map[string]string)
	checkDate(errors, "date", req.Date)

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateCreateSell validates a sell creation request. Same constraints as a
// buy, except the position is addressed by holding instead of asset and
// portfolio.
func ValidateCreateSell(req request.CreateSellRequest) error {
	if err := ValidateUUIDs([]string{req.PlatformID, req.HoldingID}); err != nil {
		return err
	}

	errors := make(map[string]string)
	checkDate(errors, "date", req.Date)

	if !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	if req.PlatformID != nil {
		if err := ValidateUUID(*req.PlatformID); err != nil {
			return err
		}
	}
	if req.PortfolioID != nil {
		if err := ValidateUUID(*req.PortfolioID); err != nil {
			return err
		}
	}

	errors := make(map[string]string)
	if req.Date != nil {
		checkDate(errors, "date", *req.Date)
	}
	if req.Quantity != nil && !req.Quantity.IsPositive() {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price != nil && !req.Price.IsPositive() {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
