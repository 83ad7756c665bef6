package history

import (
	"net/http"
	"strconv"

	"customer-chatbot/internal/services"
	"customer-chatbot/internal/utils"
	"customer-chatbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxLimit = 100

// GetHistory godoc
// @Summary List chat history
// @Description Retrieve recorded turns in the order they happened
// @Tags history
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} utils.Response{data=HistoryResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /history [get]
func GetHistory(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > maxLimit {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	turns, total, err := services.ListHistory(page, limit)
	if err != nil {
		logger.Log.Error("Failed to list chat history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch history"))
		return
	}

	items := make([]TurnItem, 0, len(turns))
	for _, t := range turns {
		items = append(items, TurnItem{
			ID:          t.ID,
			UserInput:   t.UserInput,
			BotResponse: t.BotResponse,
			Intent:      t.Intent,
			Source:      t.Source,
			CreatedAt:   t.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", HistoryResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}
