package routes

import (
	"github.com/IsuruKaushika/Ogee-Era/controllers"
	"github.com/IsuruKaushika/Ogee-Era/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	product := server.Group("/api/product")
	{
		product.GET("/list", controllers.GetProducts)
		product.GET("/:id", controllers.GetProduct)

		admin := product.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("/add", controllers.AddProduct)
			admin.POST("/update/:id", controllers.UpdateProduct)
			admin.POST("/remove", controllers.RemoveProduct)
		}
	}
}
