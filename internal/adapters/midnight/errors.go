package midnight

import "errors"

var (
	// ErrWalletClosed is returned when a released wallet is used
	ErrWalletClosed = errors.New("wallet is closed")

	// ErrForeignHandle is returned when a handle was not created by this SDK
	ErrForeignHandle = errors.New("handle was not created by the midnight sdk")

	// ErrSubscriptionClosed is returned when the indexer ends a subscription before it delivered a result
	ErrSubscriptionClosed = errors.New("indexer subscription closed")
)
