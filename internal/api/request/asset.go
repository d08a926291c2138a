package request

// CreateAssetRequest registers a new tradable asset.
type CreateAssetRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Country  string `json:"country"`
}

// UpdateAssetRequest rewrites an asset's reference fields.
type UpdateAssetRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Country  string `json:"country"`
}
