package validation

import (
	"strings"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
)

// ValidateCreatePlatform validates a platform creation request.
func ValidateCreatePlatform(req request.CreatePlatformRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &Error{Fields: map[string]string{"name": "name is required"}}
	}
	return nil
}

// ValidateUpdatePlatform validates a platform rename request.
func ValidateUpdatePlatform(req request.UpdatePlatformRequest) error {
	return ValidateCreatePlatform(request.CreatePlatformRequest(req))
}
