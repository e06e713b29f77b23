package handlers

import (
	"net/http"

	"convodesk/internal/dto"
	"convodesk/internal/middleware"
	"convodesk/internal/models"
	"convodesk/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Conversation Handler
// List, open, edit, assign and reply. The explicit-edit endpoints ride the
// permissive transition path; board moves live in BoardHandler.
// ===========================================================================

// ConversationHandler handles conversation endpoints
type ConversationHandler struct {
	conversations services.ConversationService
	inbox         services.InboxService
	logger        *zap.Logger
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(
	conversations services.ConversationService,
	inbox services.InboxService,
	logger *zap.Logger,
) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		inbox:         inbox,
		logger:        logger,
	}
}

func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("UNAUTHORIZED", "Authentication required"))
	}
	return actor, ok
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "conversation id is not a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// List lists visible conversations
// GET /api/v1/conversations
func (h *ConversationHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.ListConversationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}
	req.SetDefaults()

	filter := services.ListFilter{Page: req.Page, Limit: req.Limit}
	if req.Status != "" {
		status := models.ConversationStatus(req.Status)
		filter.Status = &status
	}
	if req.AssigneeID != "" {
		assigneeID, err := uuid.Parse(req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "assignee_id is not a valid UUID"))
			return
		}
		filter.AssigneeID = &assigneeID
	}
	if req.AccountID != "" {
		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "account_id is not a valid UUID"))
			return
		}
		filter.AccountID = &accountID
	}

	rows, total, err := h.conversations.List(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(rows, dto.NewMeta(req.Page, req.Limit, total)))
}

// Get opens a conversation
// GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	conv, err := h.conversations.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, conv)
}

// Update edits a conversation (status, assignee, priority, stage)
// PATCH /api/v1/conversations/:id
func (h *ConversationHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	update := services.UpdateRequest{
		AssigneeID:  req.AssigneeID,
		Unassign:    req.Unassign,
		KanbanStage: req.KanbanStage,
	}
	if req.Status != nil {
		status := models.ConversationStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		update.Priority = &priority
	}

	conv, err := h.conversations.Update(c.Request.Context(), actor, id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, conv)
}

// Assign hands a conversation to an agent
// POST /api/v1/conversations/:id/assign
func (h *ConversationHandler) Assign(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AssignConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	conv, err := h.conversations.Assign(c.Request.Context(), actor, id, req.AssigneeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, conv)
}

// Unassign clears the assignee
// POST /api/v1/conversations/:id/unassign
func (h *ConversationHandler) Unassign(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	conv, err := h.conversations.Unassign(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, conv)
}

// Messages lists a conversation transcript
// GET /api/v1/conversations/:id/messages
func (h *ConversationHandler) Messages(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}
	page.SetDefaults()

	messages, total, err := h.conversations.Messages(c.Request.Context(), actor, id, page.Page, page.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(messages, dto.NewMeta(page.Page, page.Limit, total)))
}

// Reply appends an agent message
// POST /api/v1/conversations/:id/messages
func (h *ConversationHandler) Reply(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", err.Error()))
		return
	}

	msg, err := h.inbox.RecordOutbound(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(msg))
}

// Agents lists assignment candidates of an account
// GET /api/v1/accounts/:account_id/agents
func (h *ConversationHandler) Agents(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "account id is not a valid UUID"))
		return
	}

	agents, err := h.conversations.Agents(c.Request.Context(), actor, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, agents)
}

// RegisterRoutes registers conversation routes on an authenticated group
func (h *ConversationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	conversations := rg.Group("/conversations")
	{
		conversations.GET("", h.List)
		conversations.GET("/:id", h.Get)
		conversations.PATCH("/:id", h.Update)
		conversations.POST("/:id/assign", h.Assign)
		conversations.POST("/:id/unassign", h.Unassign)
		conversations.GET("/:id/messages", h.Messages)
		conversations.POST("/:id/messages", h.Reply)
	}
	rg.GET("/accounts/:account_id/agents", h.Agents)
}
