package domain

import "errors"

var (
	// ErrLedgerUnavailable is returned when the ledger cannot be reached or
	// a full enumeration produced zero successful reads
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrCampaignNotFound is returned when a campaign ID exceeds the current
	// count or its on-chain read failed
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrIndexStoreUnavailable is returned when the ownership index store is
	// unreachable; read paths degrade to empty instead of surfacing this
	ErrIndexStoreUnavailable = errors.New("index store unavailable")

	// ErrTransactionReverted is returned when a submitted transaction was
	// mined but reverted
	ErrTransactionReverted = errors.New("transaction reverted")
)
