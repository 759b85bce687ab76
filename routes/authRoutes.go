package routes

import (
	"github.com/IsuruKaushika/Ogee-Era/controllers"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine) {
	user := server.Group("/api/user")
	{
		user.POST("/register", controllers.Register)
		user.POST("/login", controllers.Login)
		user.POST("/admin", controllers.AdminLogin)
		user.POST("/forgot-password", controllers.SendPasswordResetLink)
		user.POST("/reset-password/:resetToken", controllers.ResetPassword)
	}
}
