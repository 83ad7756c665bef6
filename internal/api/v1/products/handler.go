package products

import (
	"errors"
	"net/http"

	"customer-chatbot/internal/models"
	"customer-chatbot/internal/services"
	"customer-chatbot/internal/utils"
	"customer-chatbot/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func toItem(p models.Product) ProductItem {
	return ProductItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}

// GetProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {object} utils.Response{data=ProductListResponse}
// @Failure 500 {object} utils.Response
// @Router /products [get]
func GetProducts(c *gin.Context) {
	list, err := services.ListProducts()
	if err != nil {
		logger.Log.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch products"))
		return
	}

	items := make([]ProductItem, 0, len(list))
	for _, p := range list {
		items = append(items, toItem(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", ProductListResponse{
		Products: items,
		Total:    len(items),
	}))
}

// GetProduct godoc
// @Summary Get a product by name
// @Description Name matching is case-insensitive
// @Tags products
// @Produce json
// @Param name path string true "Product name"
// @Success 200 {object} utils.Response{data=ProductItem}
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /products/{name} [get]
func GetProduct(c *gin.Context) {
	product, err := services.GetProductByName(c.Param("name"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		logger.Log.Error("Failed to fetch product", zap.String("name", c.Param("name")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch product"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", toItem(*product)))
}
