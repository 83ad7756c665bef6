package chat

import "customer-chatbot/internal/models"

// ChatRequest is one typed user message. An empty message is allowed.
type ChatRequest struct {
	Message *string `json:"message" binding:"required,max=2000"`
}

type ChatResponse struct {
	Intent   models.IntentName `json:"intent"`
	Response string            `json:"response"`
	Product  *models.Product   `json:"product,omitempty"`
	TurnID   uint              `json:"turn_id"`
}
