package handlers

import (
	"fmt"
	"net/http"

	"vendazap/internal/gateway"
	"vendazap/internal/middleware"
	"vendazap/internal/models"
	"vendazap/internal/nlu"
	"vendazap/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Gateway Webhook Handler
// Receives inbound WhatsApp messages from the messaging gateway, runs
// them through the NLU, and relays each fulfillment segment back to the
// user through the gateway send API.
//
// The gateway retries on non-200 answers, so this handler acknowledges
// with 200 "Sent!" no matter what happened internally. Delivery is
// at-most-once and best-effort: an NLU or send failure means the user
// hears silence, never a duplicate.
// ===========================================================================

// webhookAck is the fixed acknowledgment body the gateway expects
const webhookAck = "Sent!"

// GatewayWebhookHandler handles the inbound message webhook
type GatewayWebhookHandler struct {
	detector          nlu.Detector
	sender            gateway.Sender
	auditStore        store.Store
	fromNumber        string
	authToken         string
	validateSignature bool
	logger            *zap.Logger
}

// NewGatewayWebhookHandler creates the handler
func NewGatewayWebhookHandler(
	detector nlu.Detector,
	sender gateway.Sender,
	auditStore store.Store,
	fromNumber string,
	authToken string,
	validateSignature bool,
	logger *zap.Logger,
) *GatewayWebhookHandler {
	return &GatewayWebhookHandler{
		detector:          detector,
		sender:            sender,
		auditStore:        auditStore,
		fromNumber:        fromNumber,
		authToken:         authToken,
		validateSignature: validateSignature,
		logger:            logger,
	}
}

// HandleMessage processes one inbound message webhook
// POST /webhook/gateway
func (h *GatewayWebhookHandler) HandleMessage(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	ctx := c.Request.Context()

	if err := c.Request.ParseForm(); err != nil {
		// Malformed payload is a no-op, not an error
		c.String(http.StatusOK, webhookAck)
		return
	}

	if h.validateSignature {
		signature := c.GetHeader("X-Twilio-Signature")
		if !gateway.ValidateSignature(signature, requestURL(c), c.Request.PostForm, h.authToken) {
			h.logger.Warn("webhook signature rejected",
				zap.String("request_id", requestID),
				zap.String("ip", c.ClientIP()),
			)
			c.String(http.StatusForbidden, "invalid signature")
			return
		}
	}

	body := c.PostForm("Body")
	from := c.PostForm("From")
	to := c.PostForm("To")

	// An absent or empty body means nothing to understand; acknowledge
	// and move on so the gateway does not retry
	if body == "" {
		c.String(http.StatusOK, webhookAck)
		return
	}

	h.logger.Info("inbound message received",
		zap.String("request_id", requestID),
		zap.String("from", from),
	)

	h.auditStore.RecordMessage(ctx, &models.MessageLog{
		Direction: models.DirectionInbound,
		From:      from,
		To:        to,
		Body:      body,
	})

	messages, err := h.detector.DetectIntent(ctx, nlu.SessionID(from), body)
	if err != nil {
		// Swallowed deliberately: the user gets silence, the gateway
		// gets its acknowledgment
		h.logger.Error("detect intent failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		c.String(http.StatusOK, webhookAck)
		return
	}

	h.relay(c, messages, from, to)

	c.String(http.StatusOK, webhookAck)
}

// relay sends each fulfillment segment in order. One failed send is
// logged and does not stop the remaining segments.
func (h *GatewayWebhookHandler) relay(c *gin.Context, messages []nlu.Message, userNumber, myNumber string) {
	ctx := c.Request.Context()

	for _, msg := range messages {
		outbound := &gateway.OutboundMessage{
			From: h.fromNumber,
			To:   userNumber,
		}
		if outbound.From == "" {
			outbound.From = myNumber
		}

		switch {
		case msg.Text != nil:
			outbound.Body = msg.PlainText()
		case msg.Payload != nil && msg.Payload.MediaURL != "":
			outbound.Body = msg.Payload.Text
			outbound.MediaURL = msg.Payload.MediaURL
		default:
			continue
		}

		if _, err := h.sender.SendMessage(ctx, outbound); err != nil {
			h.logger.Error("send segment failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			continue
		}

		h.auditStore.RecordMessage(ctx, &models.MessageLog{
			Direction: models.DirectionOutbound,
			From:      outbound.From,
			To:        outbound.To,
			Body:      outbound.Body,
			MediaURL:  outbound.MediaURL,
		})
	}
}

// requestURL reconstructs the public URL the gateway signed
func requestURL(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		} else {
			scheme = "http"
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.RequestURI())
}

// RegisterRoutes registers the gateway webhook routes
func (h *GatewayWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhook := rg.Group("/webhook")
	{
		webhook.POST("/gateway", h.HandleMessage)
	}
}
