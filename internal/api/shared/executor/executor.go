package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainraise/crowdfund-server/internal/api/shared/dto"
	apierrors "github.com/chainraise/crowdfund-server/internal/api/shared/errors"
	"github.com/chainraise/crowdfund-server/internal/domain"
	"github.com/chainraise/crowdfund-server/internal/logger"
	"github.com/chainraise/crowdfund-server/internal/messaging"
	"github.com/chainraise/crowdfund-server/internal/projector"
	"github.com/chainraise/crowdfund-server/internal/providers/ethereum"
	"github.com/chainraise/crowdfund-server/internal/reconciler"
	"github.com/chainraise/crowdfund-server/internal/store"
	"github.com/chainraise/crowdfund-server/internal/store/schema"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ListCampaigns retrieves the full campaign set from the ledger
	ListCampaigns(ctx context.Context) (*dto.CampaignListResponse, error)

	// GetCampaign retrieves a single campaign by its ledger id.
	// Returns (nil, nil) when the campaign does not exist.
	GetCampaign(ctx context.Context, campaignID uint64) (*dto.CampaignResponse, error)

	// CreateCampaign submits a creation transaction, waits for commit, and
	// records ownership for the calling user
	CreateCampaign(ctx context.Context, userID string, req dto.CreateCampaignRequest) (*dto.CreateCampaignResponse, error)

	// Donate submits a donation transaction and waits for commit
	Donate(ctx context.Context, campaignID uint64, req dto.DonationRequest) (*dto.DonationResponse, error)

	// ListOwnedCampaigns retrieves the campaigns owned by a user, filtered
	// against a fresh ledger snapshot
	ListOwnedCampaigns(ctx context.Context, userID string) (*dto.CampaignListResponse, error)

	// LinkCampaigns attributes unindexed ledger campaigns to the calling user
	LinkCampaigns(ctx context.Context, userID string) (*dto.LinkCampaignsResponse, error)
}

type executor struct {
	ledger     ethereum.CrowdfundClient
	projector  projector.Projector
	store      store.Store
	reconciler reconciler.Reconciler
	publisher  messaging.Publisher
}

// NewExecutor creates a new API executor
func NewExecutor(
	ledger ethereum.CrowdfundClient,
	proj projector.Projector,
	st store.Store,
	rec reconciler.Reconciler,
	pub messaging.Publisher,
) Executor {
	return &executor{
		ledger:     ledger,
		projector:  proj,
		store:      st,
		reconciler: rec,
		publisher:  pub,
	}
}

func (e *executor) ListCampaigns(ctx context.Context) (*dto.CampaignListResponse, error) {
	snapshot, err := e.projector.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	campaigns := make([]dto.CampaignResponse, len(snapshot))
	for i := range snapshot {
		campaigns[i] = *dto.MapCampaignToDTO(&snapshot[i])
	}

	return &dto.CampaignListResponse{
		Campaigns: campaigns,
		Total:     len(campaigns),
	}, nil
}

func (e *executor) GetCampaign(ctx context.Context, campaignID uint64) (*dto.CampaignResponse, error) {
	campaign, err := e.ledger.CampaignAt(ctx, campaignID)
	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return dto.MapCampaignToDTO(campaign), nil
}

func (e *executor) CreateCampaign(ctx context.Context, userID string, req dto.CreateCampaignRequest) (*dto.CreateCampaignResponse, error) {
	goalWei, err := domain.ParseEther(req.GoalEth)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid goal amount: %v", err))
	}
	if goalWei.Sign() <= 0 {
		return nil, apierrors.NewValidationError("goal amount must be positive")
	}

	txHash, err := e.ledger.SubmitCreate(ctx, req.Title, req.Description, goalWei, req.DurationDays)
	if err != nil {
		return nil, fmt.Errorf("failed to submit campaign creation: %w", err)
	}

	if err := e.ledger.AwaitCommit(ctx, txHash); err != nil {
		return nil, fmt.Errorf("campaign creation did not commit: %w", err)
	}

	// The contract assigns id = campaignCount after the creation commits, so
	// the post-commit count is the new campaign's id
	campaignID, err := e.ledger.CampaignCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign count after commit: %w", err)
	}

	// Ownership recording is best-effort: the campaign already exists on the
	// ledger, and reconciliation repairs a missed record later
	record := &schema.OwnershipRecord{
		CampaignID:        campaignID,
		OwnerUserID:       userID,
		CachedTitle:       req.Title,
		CachedDescription: req.Description,
		CachedGoalWei:     goalWei.String(),
		CachedRaisedWei:   "0",
		TransactionRef:    txHash.Hex(),
	}
	if err := e.store.UpsertOwnership(ctx, record); err != nil {
		logger.WarnCtx(ctx, "Failed to record campaign ownership",
			zap.Uint64("campaign_id", campaignID),
			zap.String("owner_user_id", userID),
			zap.Error(err))
	}

	e.publish(ctx, &messaging.CampaignEvent{
		Type:        messaging.EventTypeCampaignCreated,
		CampaignID:  campaignID,
		OwnerUserID: userID,
		TxHash:      txHash.Hex(),
		Timestamp:   time.Now().UTC(),
	})

	return &dto.CreateCampaignResponse{
		CampaignID: campaignID,
		TxHash:     txHash.Hex(),
	}, nil
}

func (e *executor) Donate(ctx context.Context, campaignID uint64, req dto.DonationRequest) (*dto.DonationResponse, error) {
	amountWei, err := domain.ParseEther(req.AmountEth)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid donation amount: %v", err))
	}
	if amountWei.Sign() <= 0 {
		return nil, apierrors.NewValidationError("donation amount must be positive")
	}

	if _, err := e.ledger.CampaignAt(ctx, campaignID); err != nil {
		return nil, err
	}

	txHash, err := e.ledger.SubmitDonate(ctx, campaignID, amountWei)
	if err != nil {
		return nil, fmt.Errorf("failed to submit donation: %w", err)
	}

	if err := e.ledger.AwaitCommit(ctx, txHash); err != nil {
		return nil, fmt.Errorf("donation did not commit: %w", err)
	}

	transactionRef := uuid.NewString()

	// Cache refresh is best-effort: the ledger already holds the committed
	// amount, and every read path recomputes from a fresh snapshot anyway
	if campaign, err := e.ledger.CampaignAt(ctx, campaignID); err == nil {
		if err := e.store.UpdateRaisedCache(ctx, campaignID, campaign.RaisedWei.String()); err != nil {
			logger.WarnCtx(ctx, "Failed to refresh raised cache",
				zap.Uint64("campaign_id", campaignID),
				zap.Error(err))
		}
	}

	e.publish(ctx, &messaging.CampaignEvent{
		Type:       messaging.EventTypeCampaignDonated,
		CampaignID: campaignID,
		TxHash:     txHash.Hex(),
		AmountWei:  amountWei.String(),
		Timestamp:  time.Now().UTC(),
	})

	return &dto.DonationResponse{
		CampaignID:     campaignID,
		AmountEth:      domain.FormatEther(amountWei),
		TxHash:         txHash.Hex(),
		TransactionRef: transactionRef,
	}, nil
}

// ListOwnedCampaigns intersects the user's ownership records with a fresh
// ledger snapshot. Records whose campaign no longer exists on the ledger are
// filtered out, so stale ownership never leaks even before reconciliation
// catches up. A ledger failure is an error; an index failure degrades to an
// empty list because the advisory index must never block reads.
func (e *executor) ListOwnedCampaigns(ctx context.Context, userID string) (*dto.CampaignListResponse, error) {
	snapshot, err := e.projector.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	records, err := e.store.FindByOwner(ctx, userID)
	if err != nil {
		logger.WarnCtx(ctx, "Ownership index unavailable, returning empty set",
			zap.String("owner_user_id", userID),
			zap.Error(err))
		return &dto.CampaignListResponse{Campaigns: []dto.CampaignResponse{}}, nil
	}

	campaigns := make([]dto.CampaignResponse, 0, len(records))
	for _, rec := range records {
		campaign := snapshot.ByID(rec.CampaignID)
		if campaign == nil {
			continue
		}
		campaigns = append(campaigns, *dto.MapCampaignToDTO(campaign))
	}
	// Backfilled records share a created_at, so the index order is not a
	// stable recency order; the ledger id is
	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].ID > campaigns[j].ID })

	return &dto.CampaignListResponse{
		Campaigns: campaigns,
		Total:     len(campaigns),
	}, nil
}

func (e *executor) LinkCampaigns(ctx context.Context, userID string) (*dto.LinkCampaignsResponse, error) {
	report, err := e.reconciler.Reconcile(ctx, reconciler.Options{OwnerHint: userID})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, &messaging.CampaignEvent{
		Type:        messaging.EventTypeIndexReconciled,
		OwnerUserID: userID,
		Created:     report.Created,
		Deleted:     report.Deleted,
		Failures:    len(report.Failures),
		Timestamp:   time.Now().UTC(),
	})

	return &dto.LinkCampaignsResponse{Report: report}, nil
}

// publish sends a campaign event, logging instead of failing the caller
func (e *executor) publish(ctx context.Context, event *messaging.CampaignEvent) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishCampaignEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish campaign event",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
