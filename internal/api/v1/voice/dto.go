package voice

import "customer-chatbot/internal/models"

type VoiceResponse struct {
	Transcript string            `json:"transcript"`
	Intent     models.IntentName `json:"intent"`
	Response   string            `json:"response"`
	Product    *models.Product   `json:"product,omitempty"`
	TurnID     uint              `json:"turn_id"`
}
