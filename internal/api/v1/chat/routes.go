package chat

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, handlers ...gin.HandlerFunc) {
	router.POST("/chat", append(handlers, SendMessage)...)
}
