package services

import (
	"customer-chatbot/internal/database"
	"customer-chatbot/internal/models"
)

// RecordTurn appends a turn to the chat history. Turns are never updated.
func RecordTurn(turn *models.ChatTurn) error {
	if turn.Source == "" {
		turn.Source = models.TurnSourceText
	}
	return database.DB.Create(turn).Error
}

// ListHistory retrieves a page of turns in insertion order.
func ListHistory(page, limit int) ([]models.ChatTurn, int64, error) {
	var turns []models.ChatTurn
	var total int64

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	if err := database.DB.Model(&models.ChatTurn{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := database.DB.Order("id asc").Offset(offset).Limit(limit).Find(&turns).Error; err != nil {
		return nil, 0, err
	}

	return turns, total, nil
}
