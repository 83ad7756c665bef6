package history

import (
	"time"

	"customer-chatbot/internal/models"
)

type TurnItem struct {
	ID          uint              `json:"id"`
	UserInput   string            `json:"user_input"`
	BotResponse string            `json:"bot_response"`
	Intent      models.IntentName `json:"intent"`
	Source      models.TurnSource `json:"source"`
	CreatedAt   time.Time         `json:"created_at"`
}

type HistoryResponse struct {
	Items []TurnItem `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}
