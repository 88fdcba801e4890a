package handlers

import (
	"net/http"

	"vendazap/internal/dto"
	"vendazap/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Audit Handler
// Read-only listing of the message and payment audit logs. Registered
// only when the audit database is configured.
// ===========================================================================

// AuditHandler exposes the audit log over the operational API
type AuditHandler struct {
	messageRepo repositories.MessageLogRepository
	paymentRepo repositories.PaymentLogRepository
	logger      *zap.Logger
}

// NewAuditHandler creates the handler
func NewAuditHandler(
	messageRepo repositories.MessageLogRepository,
	paymentRepo repositories.PaymentLogRepository,
	logger *zap.Logger,
) *AuditHandler {
	return &AuditHandler{
		messageRepo: messageRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// ListMessages returns the message log, newest first
// GET /messages?page=1&limit=20
func (h *AuditHandler) ListMessages(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "Invalid pagination parameters"))
		return
	}
	query.SetDefaults()

	logs, total, err := h.messageRepo.List(c.Request.Context(), repositories.FindOptions{
		Page:  query.Page,
		Limit: query.Limit,
	})
	if err != nil {
		h.logger.Error("list message logs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Error("INTERNAL_ERROR", "Cannot list messages"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(logs, dto.NewMeta(query.Page, query.Limit, total)))
}

// ListPayments returns the payment log, newest first
// GET /payments?page=1&limit=20
func (h *AuditHandler) ListPayments(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "Invalid pagination parameters"))
		return
	}
	query.SetDefaults()

	logs, total, err := h.paymentRepo.List(c.Request.Context(), repositories.FindOptions{
		Page:  query.Page,
		Limit: query.Limit,
	})
	if err != nil {
		h.logger.Error("list payment logs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.Error("INTERNAL_ERROR", "Cannot list payments"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(logs, dto.NewMeta(query.Page, query.Limit, total)))
}

// RegisterRoutes registers the audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/messages", h.ListMessages)
	rg.GET("/payments", h.ListPayments)
}
