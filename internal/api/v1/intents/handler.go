package intents

import (
	"net/http"

	"customer-chatbot/internal/services"
	"customer-chatbot/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetIntents godoc
// @Summary List intents
// @Description Intents in the order they are checked, followed by the default intent
// @Tags intents
// @Produce json
// @Success 200 {object} utils.Response{data=[]IntentItem}
// @Router /intents [get]
func GetIntents(c *gin.Context) {
	table := services.CurrentIntents()

	items := make([]IntentItem, 0, len(table.Rules)+1)
	for _, rule := range table.Rules {
		items = append(items, IntentItem{
			Name:      rule.Name,
			Keywords:  rule.Keywords,
			Responses: table.Responses[rule.Name],
			Default:   rule.Name == table.Default,
		})
	}

	hasDefault := false
	for _, item := range items {
		hasDefault = hasDefault || item.Default
	}
	if !hasDefault {
		items = append(items, IntentItem{
			Name:      table.Default,
			Keywords:  []string{},
			Responses: table.Responses[table.Default],
			Default:   true,
		})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", items))
}
