package request

// SetFeedTokenRequest stores the price feed API token. The token is encrypted
// before it touches the database.
type SetFeedTokenRequest struct {
	Token string `json:"token"`
}
