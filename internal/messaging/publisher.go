package messaging

import (
	"context"
	"time"
)

// CampaignEventType identifies the kind of campaign event being published
type CampaignEventType string

const (
	// EventTypeCampaignCreated is published after a creation transaction
	// commits on the ledger
	EventTypeCampaignCreated CampaignEventType = "created"
	// EventTypeCampaignDonated is published after a donation transaction
	// commits on the ledger
	EventTypeCampaignDonated CampaignEventType = "donated"
	// EventTypeIndexReconciled is published after a reconciliation run
	EventTypeIndexReconciled CampaignEventType = "reconciled"
)

// CampaignEvent is the message published to downstream consumers. Publishing
// is best-effort: a failed publish never fails the originating operation.
type CampaignEvent struct {
	Type        CampaignEventType `json:"type"`
	CampaignID  uint64            `json:"campaign_id,omitempty"`
	OwnerUserID string            `json:"owner_user_id,omitempty"`
	TxHash      string            `json:"tx_hash,omitempty"`
	AmountWei   string            `json:"amount_wei,omitempty"`
	Created     int               `json:"created,omitempty"`
	Deleted     int               `json:"deleted,omitempty"`
	Failures    int               `json:"failures,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Publisher defines the interface for publishing campaign events
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishCampaignEvent publishes a campaign event
	PublishCampaignEvent(ctx context.Context, event *CampaignEvent) error

	// Close closes the underlying connection
	Close()
}
