package routes

import (
	"github.com/IsuruKaushika/Ogee-Era/controllers"
	"github.com/IsuruKaushika/Ogee-Era/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	order := server.Group("/api/order")
	{
		// PayHere must reach notify without a bearer token; the redirect
		// landers are likewise unauthenticated.
		order.POST("/payhere-notify", controllers.PayhereNotify)
		order.GET("/payhere-success", controllers.PayhereSuccess)
		order.GET("/payhere-failure", controllers.PayhereFailure)

		authed := order.Group("", middlewares.RequireAuth())
		{
			authed.POST("/place", controllers.PlaceOrder)
			authed.POST("/create-pending", controllers.CreatePendingOrder)
			authed.POST("/userorders", controllers.UserOrders)
		}

		admin := order.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
		{
			admin.POST("/list", controllers.AllOrders)
			admin.POST("/status", controllers.UpdateStatus)
			admin.POST("/delete", controllers.DeleteOrder)
			admin.GET("/export", controllers.ExportOrders)
			admin.GET("/:orderId/payment", controllers.GetOrderPayment)
			admin.GET("/undelivered-count", controllers.UndeliveredOrderCount)
		}
	}
}
