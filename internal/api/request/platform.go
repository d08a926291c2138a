package request

// CreatePlatformRequest registers a new broker or exchange.
type CreatePlatformRequest struct {
	Name string `json:"name"`
}

// UpdatePlatformRequest renames a platform.
type UpdatePlatformRequest struct {
	Name string `json:"name"`
}
