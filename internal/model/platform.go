package model

import "time"

// Platform is the brokerage or exchange app where a transaction leg occurred.
// Pure reference data; platforms carry no numeric state of their own.
type Platform struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
