package intents

import "customer-chatbot/internal/models"

type IntentItem struct {
	Name      models.IntentName `json:"name"`
	Keywords  []string          `json:"keywords"`
	Responses []string          `json:"responses"`
	Default   bool              `json:"default"`
}
