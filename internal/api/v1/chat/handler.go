package chat

import (
	"net/http"

	"customer-chatbot/internal/middleware"
	"customer-chatbot/internal/models"
	"customer-chatbot/internal/services"
	"customer-chatbot/internal/utils"

	"github.com/gin-gonic/gin"
)

// SendMessage godoc
// @Summary Send a chat message
// @Description Classify the message, answer it and append the turn to history
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "User message"
// @Success 200 {object} utils.Response{data=ChatResponse}
// @Failure 400 {object} utils.Response
// @Failure 429 {object} utils.Response
// @Router /chat [post]
func SendMessage(c *gin.Context) {
	var req ChatRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	metadata := map[string]interface{}{}
	if id := middleware.RequestID(c); id != "" {
		metadata["request_id"] = id
	}

	reply := services.ProcessTurn(services.TurnRequest{
		Input:    *req.Message,
		Source:   models.TurnSourceText,
		Metadata: metadata,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", ChatResponse{
		Intent:   reply.Intent,
		Response: reply.Response,
		Product:  reply.Product,
		TurnID:   reply.TurnID,
	}))
}
