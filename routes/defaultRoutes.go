package routes

import (
	"github.com/IsuruKaushika/Ogee-Era/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
