package handler

import (
	"token-registry-service/controller/respond"
	model "token-registry-service/models"
	"token-registry-service/service/registry_service"

	"github.com/gin-gonic/gin"
)

// EventHandler event log query handler
type EventHandler struct {
	registry *registry_service.RegistryService
}

// NewEventHandler create event handler instance
func NewEventHandler(registry *registry_service.RegistryService) *EventHandler {
	return &EventHandler{
		registry: registry,
	}
}

var knownEventTypes = map[string]bool{
	model.EventTypeMint:     true,
	model.EventTypeTransfer: true,
	model.EventTypeApprove:  true,
	model.EventTypeRevoke:   true,
	model.EventTypeBurn:     true,
}

// ListEvents paginated read of the append-only event log
// @Summary List events
// @Description Returns event log entries in append order, optionally filtered by type
// @Tags Event
// @Produce json
// @Param cursor query int false "Cursor (from 0)" default(0)
// @Param size query int false "Page size" default(20)
// @Param type query string false "Event type filter (nft_mint, nft_transfer, nft_approve, nft_revoke, nft_burn)"
// @Success 200 {object} respond.Response{data=respond.EventListResponse}
// @Router /api/v1/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	cursor, size := parsePage(c)

	eventType := c.Query("type")
	if eventType != "" && !knownEventTypes[eventType] {
		respond.InvalidParam(c, "unknown event type: "+eventType)
		return
	}

	events, nextCursor, err := h.registry.Events(cursor, size, eventType)
	if err != nil {
		respond.ServerError(c, err.Error())
		return
	}

	hasMore := len(events) == size
	respond.Success(c, respond.ToEventListResponse(events, nextCursor, hasMore))
}
