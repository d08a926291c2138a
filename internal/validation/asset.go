package validation

import (
	"fmt"
	"strings"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - symbol, name, currency: Must be non-empty
//   - type: Must be one of the known asset types
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	}
	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.AssetType(req.Type).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateAsset validates an asset update request. Same constraints as
// create.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	return ValidateCreateAsset(request.CreateAssetRequest(req))
}
