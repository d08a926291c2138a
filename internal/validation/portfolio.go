package validation

import (
	"strings"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
)

// ValidateCreatePortfolio validates a portfolio creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - targetDate: Must be in YYYY-MM-DD format
//   - targetAmount: Must not be negative
func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	checkDate(errors, "targetDate", req.TargetDate)
	if req.TargetAmount.IsNegative() {
		errors["targetAmount"] = "targetAmount must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdatePortfolio validates a portfolio update request. Same
// constraints as create.
func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	return ValidateCreatePortfolio(request.CreatePortfolioRequest{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
	})
}
