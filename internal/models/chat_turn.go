package models

import (
	"time"

	"gorm.io/datatypes"
)

type TurnSource string

const (
	TurnSourceText  TurnSource = "text"
	TurnSourceVoice TurnSource = "voice"
)

// ChatTurn is one exchange in the append-only conversation log.
type ChatTurn struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UserInput   string         `gorm:"type:text;not null" json:"user_input"`
	BotResponse string         `gorm:"type:text;not null" json:"bot_response"`
	Intent      IntentName     `gorm:"type:varchar(50);index" json:"intent"`
	Source      TurnSource     `gorm:"type:varchar(10);not null;default:'text'" json:"source"`
	Metadata    datatypes.JSON `gorm:"type:json" json:"metadata,omitempty" swaggertype:"object"`
}

// TableName overrides the table name
func (ChatTurn) TableName() string {
	return "chat_history"
}
