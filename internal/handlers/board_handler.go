package handlers

import (
	"net/http"

	"convodesk/internal/dto"
	"convodesk/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Board Handler
// The kanban surface: a drag is declared as source and target column and
// translated server-side into at most one status mutation.
// ===========================================================================

// BoardHandler handles board endpoints
type BoardHandler struct {
	conversations services.ConversationService
	logger        *zap.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(conversations services.ConversationService, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		conversations: conversations,
		logger:        logger,
	}
}

// MoveCard applies a board drag
// POST /api/v1/board/conversations/:id/move
func (h *BoardHandler) MoveCard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	conv, err := h.conversations.MoveCard(c.Request.Context(), actor, id, req.SourceColumn, req.TargetColumn)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, conv)
}

// RegisterRoutes registers board routes on an authenticated group
func (h *BoardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/board/conversations/:id/move", h.MoveCard)
}
