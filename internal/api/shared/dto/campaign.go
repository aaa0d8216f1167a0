package dto

import (
	"time"

	"github.com/chainraise/crowdfund-server/internal/domain"
	"github.com/chainraise/crowdfund-server/internal/reconciler"
)

// CampaignResponse represents a campaign in API responses. Amounts are
// decimal ETH strings; wei never crosses the API boundary.
type CampaignResponse struct {
	ID             uint64    `json:"id"`
	CreatorAddress string    `json:"creator_address"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	GoalEth        string    `json:"goal_eth"`
	RaisedEth      string    `json:"raised_eth"`
	Deadline       time.Time `json:"deadline"`
}

// CampaignListResponse represents a list of campaigns
type CampaignListResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
	Total     int                `json:"total"`
}

// CreateCampaignRequest represents the request body for creating a campaign
type CreateCampaignRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	GoalEth      string `json:"goal_eth" binding:"required"`
	DurationDays uint64 `json:"duration_days" binding:"required,gt=0"`
}

// CreateCampaignResponse represents the response for a created campaign
type CreateCampaignResponse struct {
	CampaignID uint64 `json:"campaign_id"`
	TxHash     string `json:"tx_hash"`
}

// DonationRequest represents the request body for a donation
type DonationRequest struct {
	AmountEth string `json:"amount_eth" binding:"required"`
}

// DonationResponse represents the response for a committed donation
type DonationResponse struct {
	CampaignID     uint64 `json:"campaign_id"`
	AmountEth      string `json:"amount_eth"`
	TxHash         string `json:"tx_hash"`
	TransactionRef string `json:"transaction_ref"`
}

// LinkCampaignsResponse represents the outcome of linking ledger campaigns
// to the calling user
type LinkCampaignsResponse struct {
	Report *reconciler.Report `json:"report"`
}

// MapCampaignToDTO converts a domain campaign to its API representation
func MapCampaignToDTO(campaign *domain.Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:             campaign.ID,
		CreatorAddress: campaign.CreatorAddress,
		Title:          campaign.Title,
		Description:    campaign.Description,
		GoalEth:        domain.FormatEther(campaign.GoalWei),
		RaisedEth:      domain.FormatEther(campaign.RaisedWei),
		Deadline:       campaign.Deadline,
	}
}
