package handlers

import (
	"strings"

	"github.com/eatmoreapple/openwechat"
	"github.com/luckfunc/goldbot/internal/services"
)

// Handler routes group messages to the gold services.
type Handler struct {
	gold *services.GoldService
}

func New(gold *services.GoldService) *Handler {
	return &Handler{gold: gold}
}

// HandleGroupMessage dispatches one inbound message. The host invokes it once
// per message, each in its own goroutine; handlers share no mutable state.
func (h *Handler) HandleGroupMessage(msg *openwechat.Message) {
	if !msg.IsSendByGroup() || !msg.IsText() {
		return
	}

	content := strings.TrimSpace(msg.Content)
	switch {
	case content == "gold" || content == "金价":
		h.gold.HandleQuery(msg)
	case content == "gold_help" || content == "金价帮助":
		h.gold.HandleHelp(msg)
	case content == "金价图":
		h.gold.HandleImageQuery(msg)
	case strings.HasPrefix(content, "现货"):
		services.HandleSpotQuery(msg, strings.TrimPrefix(content, "现货"))
	}
}
