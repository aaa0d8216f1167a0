package projector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainraise/crowdfund-server/internal/domain"
	"github.com/chainraise/crowdfund-server/internal/logger"
	"github.com/chainraise/crowdfund-server/internal/providers/ethereum"
)

// Projector produces point-in-time snapshots of the full campaign set.
//
// Every call performs a fresh enumeration; there is no cache. Raised amounts
// must reflect the latest donation, so freshness wins over call cost at this
// data scale.
//
//go:generate mockgen -source=projector.go -destination=../mocks/projector.go -package=mocks -mock_names=Projector=MockProjector
type Projector interface {
	// Snapshot reads the current campaign set from the ledger, ordered by
	// ascending campaign id. Fails with domain.ErrLedgerUnavailable when the
	// count read fails or no campaign could be read at all.
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

type projector struct {
	ledger ethereum.CrowdfundClient
}

// New creates a new campaign projector
func New(ledger ethereum.CrowdfundClient) Projector {
	return &projector{ledger: ledger}
}

// Snapshot reads the current campaign set from the ledger.
//
// Campaign ids are 1-based: the contract assigns id = campaignCount after a
// creation commits, so enumeration runs 1..count. A single id failing to
// read or decode is skipped, not fatal; only a fully failed enumeration is.
func (p *projector) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	count, err := p.ledger.CampaignCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign count: %w", err)
	}

	snapshot := make(domain.Snapshot, 0, count)
	for id := uint64(1); id <= count; id++ {
		campaign, err := p.ledger.CampaignAt(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("enumeration canceled: %w", ctx.Err())
			}
			logger.DebugCtx(ctx, "Skipping unreadable campaign",
				zap.Uint64("campaign_id", id),
				zap.Error(err))
			continue
		}
		snapshot = append(snapshot, *campaign)
	}

	if count > 0 && len(snapshot) == 0 {
		return nil, fmt.Errorf("%w: all %d campaign reads failed", domain.ErrLedgerUnavailable, count)
	}

	return snapshot, nil
}
