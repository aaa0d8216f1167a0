package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chainraise/crowdfund-server/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateOwnershipIfAbsent inserts the record unless one already exists for
// its campaign id
func (s *pgStore) CreateOwnershipIfAbsent(ctx context.Context, record *schema.OwnershipRecord) (bool, error) {
	// ON CONFLICT DO NOTHING on campaign_id makes concurrent reconciliation
	// runs race-free without a read-then-write
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create ownership record: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// UpsertOwnership inserts the record or overwrites the owner and cached
// fields of the existing one (last writer wins)
func (s *pgStore) UpsertOwnership(ctx context.Context, record *schema.OwnershipRecord) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"owner_user_id",
			"cached_title",
			"cached_description",
			"cached_goal_wei",
			"cached_raised_wei",
			"transaction_ref",
			"updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ownership record: %w", err)
	}

	return nil
}

// DeleteByCampaignIDs removes the records for the given campaign ids
func (s *pgStore) DeleteByCampaignIDs(ctx context.Context, campaignIDs []uint64) (int64, error) {
	if len(campaignIDs) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Where("campaign_id IN ?", campaignIDs).
		Delete(&schema.OwnershipRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete ownership records: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// FindByOwner retrieves the records owned by a user, most recent first
func (s *pgStore) FindByOwner(ctx context.Context, ownerUserID string) ([]schema.OwnershipRecord, error) {
	var records []schema.OwnershipRecord
	err := s.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership records by owner: %w", err)
	}

	return records, nil
}

// ListAll retrieves the full ownership record set
func (s *pgStore) ListAll(ctx context.Context) ([]schema.OwnershipRecord, error) {
	var records []schema.OwnershipRecord
	err := s.db.WithContext(ctx).
		Order("campaign_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ownership records: %w", err)
	}

	return records, nil
}

// UpdateRaisedCache refreshes the cached raised amount for a campaign
func (s *pgStore) UpdateRaisedCache(ctx context.Context, campaignID uint64, raisedWei string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.OwnershipRecord{}).
		Where("campaign_id = ?", campaignID).
		Updates(map[string]any{
			"cached_raised_wei": raisedWei,
			"updated_at":        time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update raised cache: %w", err)
	}

	return nil
}

// IsAvailable reports whether the store is reachable
func (s *pgStore) IsAvailable(ctx context.Context) bool {
	sqlDB, err := s.db.DB()
	if err != nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(pingCtx) == nil
}
