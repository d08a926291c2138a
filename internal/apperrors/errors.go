package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrPlatformNotFound indicates that a platform with the given ID does not exist.
	ErrPlatformNotFound = errors.New("platform not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrHoldingNotFound indicates that a holding with the given ID, or for the
	// given (asset, portfolio) pair, does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransferNotFound indicates that a transfer record with the given ID does not exist.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrAccountNotFound indicates that a holding has no position on the
	// requested platform.
	ErrAccountNotFound = errors.New("account not found on platform")

	// ErrDestinationHoldingNotFound indicates that an edit moved a non-buy
	// transaction to a portfolio that has no holding for the asset. Only buy
	// transactions may create a holding on edit.
	ErrDestinationHoldingNotFound = errors.New("destination holding not found for sell/transfer")

	// ErrSettingNotFound indicates that a settings key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business
// rules; they are rejected before any mutation takes place.
var (
	// ErrInvalidQuantity indicates a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidPrice indicates a zero or negative price.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInsufficientQuantity indicates that a sell or transfer requested more
	// quantity than the platform-scoped position holds.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrSamePortfolio indicates a transfer whose source and destination
	// portfolios are identical.
	ErrSamePortfolio = errors.New("source and destination portfolio are the same")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Data integrity errors represent inconsistencies in the stored ledger.
// They are hard failures: the operation must stop without mutating anything.
var (
	// ErrMissingCostBasis indicates that a sell or allocate-out leg has no
	// recorded costBasisPerUnit snapshot, so its holding effect cannot be
	// reversed. This is never defaulted to zero.
	ErrMissingCostBasis = errors.New("missing cost basis snapshot")

	// ErrDataInconsistency indicates that the ledger is in an inconsistent
	// state (e.g., a transfer leg whose pair record is missing).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, not missing entities or validation issues.
var (
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrievePlatforms    = errors.New("failed to retrieve platforms")
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrieveHoldings     = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToComputePosition      = errors.New("failed to compute position")
	ErrFailedToGetPortfolioSummary  = errors.New("failed to get portfolio summary")
	ErrFailedToRefreshPrices        = errors.New("failed to refresh prices")
)
