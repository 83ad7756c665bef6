package products

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("", GetProducts)
		productGroup.GET("/:name", GetProduct)
	}
}
