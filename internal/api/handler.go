package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/albumvault/fetchd/internal/api/middleware"
	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/orchestrator"
	"github.com/albumvault/fetchd/internal/store"
	"github.com/albumvault/fetchd/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// RequestFetch runs one fetch request end to end
	// POST /api/v1/fetches
	RequestFetch(c *gin.Context)

	// GetStats reports storage usage and in-flight downloads
	// GET /api/v1/stats
	GetStats(c *gin.Context)

	// GetItem retrieves one item by its external ID
	// GET /api/v1/items/:id
	GetItem(c *gin.Context)

	// GetTopItems lists items by fetch count
	// GET /api/v1/stats/top-items?limit=<limit>
	GetTopItems(c *gin.Context)

	// GetTopItem returns the most fetched item
	// GET /api/v1/stats/top-item
	GetTopItem(c *gin.Context)

	// GetTopRequester returns the requester with the most fetch events
	// GET /api/v1/stats/top-requester
	GetTopRequester(c *gin.Context)

	// GetFirstRequester returns the requester of an item's earliest fetch
	// GET /api/v1/items/:id/requesters/first
	GetFirstRequester(c *gin.Context)

	// GetLastRequester returns the requester of an item's latest fetch
	// GET /api/v1/items/:id/requesters/last
	GetLastRequester(c *gin.Context)

	// GetTopRequesterByTag returns the top requester among items carrying a tag
	// GET /api/v1/tags/:tag/top-requester
	GetTopRequesterByTag(c *gin.Context)

	// SetBlacklist flips the moderation flag (requires API key)
	// PUT /api/v1/items/:id/blacklist
	SetBlacklist(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	orchestrator orchestrator.Orchestrator
	store        store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(orch orchestrator.Orchestrator, st store.Store) Handler {
	return &handler{
		orchestrator: orch,
		store:        st,
	}
}

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Fetch submission (requires authentication)
		v1.POST("/fetches", middleware.Auth(authCfg), handler.RequestFetch)

		// Stats and aggregates (public read access)
		v1.GET("/stats", handler.GetStats)
		v1.GET("/stats/top-items", handler.GetTopItems)
		v1.GET("/stats/top-item", handler.GetTopItem)
		v1.GET("/stats/top-requester", handler.GetTopRequester)

		// Item endpoints (public read access)
		v1.GET("/items/:id", handler.GetItem)
		v1.GET("/items/:id/requesters/first", handler.GetFirstRequester)
		v1.GET("/items/:id/requesters/last", handler.GetLastRequester)

		// Tag aggregate (public read access)
		v1.GET("/tags/:tag/top-requester", handler.GetTopRequesterByTag)

		// Moderation (requires API key authentication only)
		v1.PUT("/items/:id/blacklist", middleware.APIKeyAuth(authCfg), handler.SetBlacklist)
	}
}

func (h *handler) RequestFetch(c *gin.Context) {
	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.orchestrator.RequestFetch(c.Request.Context(), domain.FetchRequest{
		ItemID:        req.ItemID,
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
	})
	if err != nil {
		respondFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFetchResponse(result))
}

func (h *handler) GetStats(c *gin.Context) {
	stats, err := h.orchestrator.GetStats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get stats")
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		UsedBytes:       stats.UsedBytes,
		MaxBytes:        stats.MaxBytes,
		ActiveDownloads: stats.ActiveDownloads,
	})
}

func (h *handler) GetItem(c *gin.Context) {
	itemID := c.Param("id")
	if itemID == "" {
		respondBadRequest(c, "Item ID is required")
		return
	}

	item, err := h.store.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondInternalError(c, err, "Failed to get item")
		return
	}
	if item == nil {
		respondNotFound(c, "Item not found")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *handler) GetTopItems(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			respondBadRequest(c, "limit must be an integer between 1 and 100")
			return
		}
		limit = parsed
	}

	items, err := h.store.TopItems(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list top items")
		return
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": responses})
}

func (h *handler) GetTopItem(c *gin.Context) {
	item, err := h.store.MostFetchedItem(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get top item")
		return
	}
	if item == nil {
		respondNotFound(c, "No fetches recorded yet")
		return
	}

	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *handler) GetTopRequester(c *gin.Context) {
	requester, err := h.store.MostFetchedRequester(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to get top requester")
		return
	}
	if requester == nil {
		respondNotFound(c, "No fetches recorded yet")
		return
	}

	c.JSON(http.StatusOK, toRequesterResponse(requester))
}

func (h *handler) GetFirstRequester(c *gin.Context) {
	h.requesterForItem(c, h.store.FirstRequester)
}

func (h *handler) GetLastRequester(c *gin.Context) {
	h.requesterForItem(c, h.store.LastRequester)
}

// requesterForItem serves the first/last requester lookups, which only
// differ in the store query they run
func (h *handler) requesterForItem(c *gin.Context, query func(ctx context.Context, itemID string) (*schema.Requester, error)) {
	itemID := c.Param("id")
	if itemID == "" {
		respondBadRequest(c, "Item ID is required")
		return
	}

	item, err := h.store.GetItem(c.Request.Context(), itemID)
	if err != nil {
		respondInternalError(c, err, "Failed to get item")
		return
	}
	if item == nil {
		respondNotFound(c, "Item not found")
		return
	}

	requester, err := query(c.Request.Context(), itemID)
	if err != nil {
		respondInternalError(c, err, "Failed to get requester")
		return
	}
	if requester == nil {
		respondNotFound(c, "No fetches recorded for this item")
		return
	}

	c.JSON(http.StatusOK, toRequesterResponse(requester))
}

func (h *handler) GetTopRequesterByTag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		respondBadRequest(c, "Tag is required")
		return
	}

	requester, err := h.store.TopRequesterByTag(c.Request.Context(), tag)
	if err != nil {
		respondInternalError(c, err, "Failed to get top requester for tag")
		return
	}
	if requester == nil {
		respondNotFound(c, "No fetches recorded for this tag")
		return
	}

	c.JSON(http.StatusOK, toRequesterResponse(requester))
}

func (h *handler) SetBlacklist(c *gin.Context) {
	itemID := c.Param("id")
	if itemID == "" {
		respondBadRequest(c, "Item ID is required")
		return
	}

	var req BlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.orchestrator.SetBlacklist(c.Request.Context(), itemID, *req.Blacklisted); err != nil {
		respondFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item_id": itemID, "blacklisted": *req.Blacklisted})
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
