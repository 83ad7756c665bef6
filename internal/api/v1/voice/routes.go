package voice

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, handlers ...gin.HandlerFunc) {
	router.POST("/voice", append(handlers, SendVoice)...)
}
