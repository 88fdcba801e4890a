package handlers

import (
	"net/http"

	"vendazap/internal/intent"
	"vendazap/internal/middleware"
	"vendazap/internal/nlu"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Fulfillment Webhook Handler
// Receives the NLU platform's fulfillment calls, dispatches on the
// matched intent, and answers in the platform's fulfillment-response
// shape. A handler failure answers an empty response: the user hears
// silence and the platform does not retry.
// ===========================================================================

// FulfillmentWebhookHandler handles the NLU fulfillment webhook
type FulfillmentWebhookHandler struct {
	registry *intent.Registry
	logger   *zap.Logger
}

// NewFulfillmentWebhookHandler creates the handler
func NewFulfillmentWebhookHandler(registry *intent.Registry, logger *zap.Logger) *FulfillmentWebhookHandler {
	return &FulfillmentWebhookHandler{
		registry: registry,
		logger:   logger,
	}
}

// HandleFulfillment processes one fulfillment call
// POST /webhook/fulfillment
func (h *FulfillmentWebhookHandler) HandleFulfillment(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	ctx := c.Request.Context()

	var req nlu.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid fulfillment payload",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, nlu.WebhookResponse{})
		return
	}

	response, matched, err := h.registry.Dispatch(ctx, &req)
	if err != nil {
		h.logger.Error("intent handler failed",
			zap.String("request_id", requestID),
			zap.String("intent", matched.String()),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, nlu.WebhookResponse{})
		return
	}

	h.logger.Info("fulfillment dispatched",
		zap.String("request_id", requestID),
		zap.String("intent", matched.String()),
		zap.Int("segments", len(response.FulfillmentMessages)),
	)

	c.JSON(http.StatusOK, response)
}

// RegisterRoutes registers the fulfillment webhook routes
func (h *FulfillmentWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhook := rg.Group("/webhook")
	{
		webhook.POST("/fulfillment", h.HandleFulfillment)
	}
}
