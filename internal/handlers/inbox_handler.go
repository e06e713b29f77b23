package handlers

import (
	"net/http"

	"convodesk/internal/dto"
	"convodesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Inbox Handler
// Inbound customer traffic (chat widget, channel webhooks). Keyed by
// account, not by operator session.
// ===========================================================================

// InboxHandler handles message intake endpoints
type InboxHandler struct {
	inbox  services.InboxService
	logger *zap.Logger
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(inbox services.InboxService, logger *zap.Logger) *InboxHandler {
	return &InboxHandler{
		inbox:  inbox,
		logger: logger,
	}
}

// Inbound records a customer message
// POST /api/v1/accounts/:account_id/inbound
func (h *InboxHandler) Inbound(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "account id is not a valid UUID"))
		return
	}

	var req dto.InboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "contact id is not a valid UUID"))
		return
	}

	msg, err := h.inbox.RecordInbound(c.Request.Context(), accountID, contactID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(msg))
}

// RegisterRoutes registers intake routes (public, widget-facing)
func (h *InboxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/accounts/:account_id/inbound", h.Inbound)
}
