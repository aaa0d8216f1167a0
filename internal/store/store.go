package store

import (
	"context"

	"github.com/chainraise/crowdfund-server/internal/store/schema"
)

// Store defines the interface for ownership index operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateOwnershipIfAbsent inserts the record unless one already exists
	// for its campaign id. Returns true if a row was inserted. The check is
	// a store-level conditional insert, safe under concurrent callers.
	CreateOwnershipIfAbsent(ctx context.Context, record *schema.OwnershipRecord) (bool, error)

	// UpsertOwnership inserts the record or, if one exists for its campaign
	// id, overwrites the owner and cached fields (last writer wins)
	UpsertOwnership(ctx context.Context, record *schema.OwnershipRecord) error

	// DeleteByCampaignIDs removes the records for the given campaign ids and
	// returns the number of rows deleted
	DeleteByCampaignIDs(ctx context.Context, campaignIDs []uint64) (int64, error)

	// FindByOwner retrieves the records owned by a user, most recent first
	FindByOwner(ctx context.Context, ownerUserID string) ([]schema.OwnershipRecord, error)

	// ListAll retrieves the full ownership record set
	ListAll(ctx context.Context) ([]schema.OwnershipRecord, error)

	// UpdateRaisedCache refreshes the cached raised amount for a campaign
	UpdateRaisedCache(ctx context.Context, campaignID uint64, raisedWei string) error

	// IsAvailable reports whether the store is reachable
	IsAvailable(ctx context.Context) bool
}
