package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"convodesk/internal/dto"
	"convodesk/internal/middleware"
	"convodesk/internal/models"
	"convodesk/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Stream Handler
// Server-sent events feed of an account's conversation and message
// changes. Each connected viewer is one subscriber on the account's shared
// realtime channel; closing the request detaches it.
// ===========================================================================

// StreamHandler handles the SSE endpoint
type StreamHandler struct {
	manager *realtime.Manager
	logger  *zap.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(manager *realtime.Manager, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		manager: manager,
		logger:  logger,
	}
}

// Stream attaches the client to its account's change feed
// GET /api/v1/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error("UNAUTHORIZED", "Authentication required"))
		return
	}

	// Superadmins pick the account to watch; everyone else streams their
	// own.
	var accountID uuid.UUID
	switch {
	case actor.AccountID != nil:
		accountID = *actor.AccountID
	case actor.Role == models.RoleSuperadmin:
		parsed, err := uuid.Parse(c.Query("account_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Error("INVALID_REQUEST", "account_id query parameter is required"))
			return
		}
		accountID = parsed
	default:
		c.JSON(http.StatusForbidden, dto.Error("SCOPE_DENIED", "no account to stream"))
		return
	}

	// Buffered so a slow write never stalls the channel's dispatch loop;
	// overflow drops the event, the client reconciles on next fetch.
	events := make(chan realtime.Event, 32)
	handle, err := h.manager.Attach(c.Request.Context(), accountID, func(ev realtime.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}
	defer h.manager.Detach(handle)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.Flush()

	h.logger.Info("stream attached",
		zap.String("account_id", accountID.String()),
		zap.String("user_id", actor.ID.String()),
	)

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			payload, err := json.Marshal(ev)
			if err != nil {
				return true
			}
			c.SSEvent("change", string(payload))
			return true
		case <-handle.Done():
			// Transport died; the client should reconnect.
			c.SSEvent("error", `{"reason":"channel lost"}`)
			return false
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// RegisterRoutes registers the stream route on an authenticated group
func (h *StreamHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stream", h.Stream)
}
