package routes

import (
	"github.com/IsuruKaushika/Ogee-Era/controllers"
	"github.com/IsuruKaushika/Ogee-Era/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/api/cart", middlewares.RequireAuth())
	{
		cart.POST("/add", controllers.AddToCart)
		cart.POST("/update", controllers.UpdateCartItem)
		cart.GET("", controllers.GetCart)
	}
}
