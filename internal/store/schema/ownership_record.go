package schema

import "time"

// OwnershipRecord represents the ownership_records table. It is the local,
// advisory index mapping ledger-assigned campaign ids to the local user who
// created them. The ledger remains authoritative for campaign content; the
// cached_* columns only avoid a ledger round trip for display.
type OwnershipRecord struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CampaignID is the ledger-assigned campaign identifier; at most one
	// record may exist per campaign
	CampaignID uint64 `gorm:"column:campaign_id;not null;uniqueIndex:idx_ownership_campaign_id"`
	// OwnerUserID is the local user who created (or claimed) the campaign
	OwnerUserID string `gorm:"column:owner_user_id;not null;index:idx_ownership_owner"`
	// CachedTitle is a possibly stale copy of the on-chain title
	CachedTitle string `gorm:"column:cached_title;type:text"`
	// CachedDescription is a possibly stale copy of the on-chain description
	CachedDescription string `gorm:"column:cached_description;type:text"`
	// CachedGoalWei is the funding goal in wei (stored as string to support up to 78 digits)
	CachedGoalWei string `gorm:"column:cached_goal_wei;type:numeric(78,0)"`
	// CachedRaisedWei is the last observed amount collected in wei
	CachedRaisedWei string `gorm:"column:cached_raised_wei;type:numeric(78,0)"`
	// TransactionRef is the creation transaction hash, or the backfilled
	// sentinel when reconciliation created the record
	TransactionRef string `gorm:"column:transaction_ref;not null"`
	// CreatedAt is the timestamp when the record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when the record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the OwnershipRecord model
func (OwnershipRecord) TableName() string {
	return "ownership_records"
}
