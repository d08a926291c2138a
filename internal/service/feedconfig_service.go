package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog"
)

// feedTokenSettingKey is the app_setting row holding the encrypted feed token.
const feedTokenSettingKey = "price_feed_api_token"

// FeedConfigService stores the price feed's API token encrypted at rest.
// Tokens are fernet-encrypted with the key from configuration; the plaintext
// never touches the database.
type FeedConfigService struct {
	db  *sql.DB
	key *fernet.Key
	log zerolog.Logger
}

// NewFeedConfigService creates a FeedConfigService with the given base64
// fernet key.
func NewFeedConfigService(db *sql.DB, encodedKey string, log zerolog.Logger) (*FeedConfigService, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid fernet key: %w", err)
	}
	return &FeedConfigService{
		db:  db,
		key: key,
		log: log.With().Str("service", "feedconfig").Logger(),
	}, nil
}

// SetAPIToken encrypts and stores the feed API token.
func (s *FeedConfigService) SetAPIToken(ctx context.Context, token string) error {
	ciphertext, err := fernet.EncryptAndSign([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt feed token: %w", err)
	}
	if err := repository.NewSettingRepository(s.db).Set(ctx, feedTokenSettingKey, string(ciphertext)); err != nil {
		return err
	}

	s.log.Info().Msg("stored feed API token")
	return nil
}

// GetAPIToken decrypts and returns the stored feed API token. Returns an
// empty token with no error when none has been configured.
func (s *FeedConfigService) GetAPIToken(ctx context.Context) (string, error) {
	ciphertext, err := repository.NewSettingRepository(s.db).Get(ctx, feedTokenSettingKey)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if ciphertext == "" {
		return "", nil
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return "", apperrors.ErrDataInconsistency
	}
	return string(plaintext), nil
}

// ClearAPIToken removes the stored token.
func (s *FeedConfigService) ClearAPIToken(ctx context.Context) error {
	return repository.NewSettingRepository(s.db).Set(ctx, feedTokenSettingKey, "")
}
