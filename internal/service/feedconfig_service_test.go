package service_test

import (
	"context"
	"testing"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/repository"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/testutil"
	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newFeedConfigService(t *testing.T) (*service.FeedConfigService, *testEnv) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	var key fernet.Key
	require.NoError(t, key.Generate())

	svc, err := service.NewFeedConfigService(db, key.Encode(), zerolog.Nop())
	require.NoError(t, err)
	return svc, &testEnv{db: db}
}

func TestFeedConfigService(t *testing.T) {
	ctx := context.Background()

	t.Run("token round-trips through encryption", func(t *testing.T) {
		svc, env := newFeedConfigService(t)

		require.NoError(t, svc.SetAPIToken(ctx, "feed-token-123"))

		token, err := svc.GetAPIToken(ctx)
		require.NoError(t, err)
		require.Equal(t, "feed-token-123", token)

		// The stored value is ciphertext, never the plaintext.
		stored, err := repository.NewSettingRepository(env.db).Get(ctx, "price_feed_api_token")
		require.NoError(t, err)
		require.NotEqual(t, "feed-token-123", stored)
		require.NotEmpty(t, stored)
	})

	t.Run("unset token reads as empty without error", func(t *testing.T) {
		svc, _ := newFeedConfigService(t)

		token, err := svc.GetAPIToken(ctx)
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("cleared token reads as empty", func(t *testing.T) {
		svc, _ := newFeedConfigService(t)

		require.NoError(t, svc.SetAPIToken(ctx, "feed-token-123"))
		require.NoError(t, svc.ClearAPIToken(ctx))

		token, err := svc.GetAPIToken(ctx)
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("ciphertext under a different key is rejected", func(t *testing.T) {
		svc, env := newFeedConfigService(t)
		require.NoError(t, svc.SetAPIToken(ctx, "feed-token-123"))

		var otherKey fernet.Key
		require.NoError(t, otherKey.Generate())
		other, err := service.NewFeedConfigService(env.db, otherKey.Encode(), zerolog.Nop())
		require.NoError(t, err)

		_, err = other.GetAPIToken(ctx)
		require.ErrorIs(t, err, apperrors.ErrDataInconsistency)
	})

	t.Run("malformed key is rejected at construction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		_, err := service.NewFeedConfigService(db, "not-a-key", zerolog.Nop())
		require.Error(t, err)
	})
}
