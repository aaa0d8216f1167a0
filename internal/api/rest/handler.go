package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chainraise/crowdfund-server/internal/api/middleware"
	"github.com/chainraise/crowdfund-server/internal/api/shared/dto"
	"github.com/chainraise/crowdfund-server/internal/api/shared/executor"
	"github.com/chainraise/crowdfund-server/internal/providers/ethereum"
	"github.com/chainraise/crowdfund-server/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListCampaigns retrieves all campaigns from the ledger
	// GET /api/v1/campaigns
	ListCampaigns(c *gin.Context)

	// GetCampaign retrieves a single campaign by its ledger id
	// GET /api/v1/campaigns/:id
	GetCampaign(c *gin.Context)

	// CreateCampaign creates a new campaign on the ledger (requires authentication)
	// POST /api/v1/campaigns
	CreateCampaign(c *gin.Context)

	// Donate submits a donation to a campaign
	// POST /api/v1/campaigns/:id/donations
	Donate(c *gin.Context)

	// ListOwnedCampaigns retrieves the caller's campaigns (requires authentication)
	// GET /api/v1/me/campaigns
	ListOwnedCampaigns(c *gin.Context)

	// LinkCampaigns attributes unindexed ledger campaigns to the caller (requires authentication)
	// POST /api/v1/me/campaigns/link
	LinkCampaigns(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
	store    store.Store
	ledger   ethereum.CrowdfundClient
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor, st store.Store, ledger ethereum.CrowdfundClient) Handler {
	return &handler{
		executor: exec,
		store:    st,
		ledger:   ledger,
	}
}

// ListCampaigns retrieves all campaigns from the ledger
func (h *handler) ListCampaigns(c *gin.Context) {
	response, err := h.executor.ListCampaigns(c.Request.Context())
	if err != nil {
		respondExecutorError(c, err, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCampaign retrieves a single campaign by its ledger id
func (h *handler) GetCampaign(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	campaignDTO, err := h.executor.GetCampaign(c.Request.Context(), campaignID)
	if err != nil {
		respondExecutorError(c, err, "Failed to get campaign")
		return
	}

	if campaignDTO == nil {
		respondNotFound(c, "Campaign not found")
		return
	}

	c.JSON(http.StatusOK, campaignDTO)
}

// CreateCampaign creates a new campaign on the ledger
func (h *handler) CreateCampaign(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.CreateCampaign(c.Request.Context(), middleware.AuthSubject(c), req)
	if err != nil {
		respondExecutorError(c, err, "Failed to create campaign")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Donate submits a donation to a campaign
func (h *handler) Donate(c *gin.Context) {
	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req dto.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.Donate(c.Request.Context(), campaignID, req)
	if err != nil {
		respondExecutorError(c, err, "Failed to donate")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListOwnedCampaigns retrieves the caller's campaigns
func (h *handler) ListOwnedCampaigns(c *gin.Context) {
	response, err := h.executor.ListOwnedCampaigns(c.Request.Context(), middleware.AuthSubject(c))
	if err != nil {
		respondExecutorError(c, err, "Failed to list owned campaigns")
		return
	}

	c.JSON(http.StatusOK, response)
}

// LinkCampaigns attributes unindexed ledger campaigns to the caller
func (h *handler) LinkCampaigns(c *gin.Context) {
	response, err := h.executor.LinkCampaigns(c.Request.Context(), middleware.AuthSubject(c))
	if err != nil {
		respondExecutorError(c, err, "Failed to link campaigns")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API. The ledger and index
// flags report dependency reachability without failing the probe.
func (h *handler) HealthCheck(c *gin.Context) {
	_, ledgerErr := h.ledger.CampaignCount(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "crowdfund-api",
		"ledger":  ledgerErr == nil,
		"index":   h.store.IsAvailable(c.Request.Context()),
	})
}

// parseCampaignID parses the :id path parameter, responding on failure
func parseCampaignID(c *gin.Context) (uint64, bool) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || campaignID == 0 {
		respondBadRequest(c, "Invalid campaign id")
		return 0, false
	}

	return campaignID, true
}
