package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ElioenaiFerrari/grace-backend/internal/dialogue"
	pkgerrors "github.com/ElioenaiFerrari/grace-backend/internal/pkg/errors"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

// WebhookHandler is the thin adapter between the messaging-platform transport
// and the dialogue controller: one inbound event in, the ordered outbound
// messages in the response body.
type WebhookHandler struct {
	log        *logger.Logger
	controller *dialogue.Controller
}

func NewWebhookHandler(log *logger.Logger, controller *dialogue.Controller) *WebhookHandler {
	return &WebhookHandler{log: log.With("handler", "WebhookHandler"), controller: controller}
}

func (h *WebhookHandler) HandleEvent(c *gin.Context) {
	var ev dialogue.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	replies, err := h.controller.Handle(c.Request.Context(), ev)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Store failure: the event is unprocessed and the phase unchanged;
		// the transport should redeliver.
		h.log.Error("event not processed", "conversation_id", ev.ConversationID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "event not processed"})
		return
	}

	if replies == nil {
		replies = []dialogue.Reply{}
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
