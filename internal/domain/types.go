package domain

import (
	"math/big"
	"time"
)

// TransactionRefBackfilled marks ownership records created by reconciliation
// instead of the original write path. The creation transaction hash is not
// recoverable at that point.
const TransactionRefBackfilled = "backfilled"

// Campaign is the authoritative campaign state read from the CrowdFund
// contract. Amounts are wei; never floating point.
type Campaign struct {
	// ID is the ledger-assigned campaign identifier (1-based, sequential)
	ID uint64
	// CreatorAddress is the on-chain account that created the campaign
	CreatorAddress string
	// Title is the campaign title
	Title string
	// Description is the campaign description
	Description string
	// GoalWei is the funding goal in wei
	GoalWei *big.Int
	// RaisedWei is the amount collected so far in wei
	RaisedWei *big.Int
	// Deadline is the campaign funding deadline
	Deadline time.Time
}

// Snapshot is a point-in-time read of the full campaign set, ordered by
// ascending campaign ID.
type Snapshot []Campaign

// IDs returns the set of campaign IDs present in the snapshot.
func (s Snapshot) IDs() map[uint64]struct{} {
	ids := make(map[uint64]struct{}, len(s))
	for _, c := range s {
		ids[c.ID] = struct{}{}
	}
	return ids
}

// ByID returns the campaign with the given ID, or nil.
func (s Snapshot) ByID(id uint64) *Campaign {
	for i := range s {
		if s[i].ID == id {
			return &s[i]
		}
	}
	return nil
}
