package main

import (
	"time"

	"github.com/IsuruKaushika/Ogee-Era/controllers"
	"github.com/IsuruKaushika/Ogee-Era/initializers"
	"github.com/IsuruKaushika/Ogee-Era/payment"
	"github.com/IsuruKaushika/Ogee-Era/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	controllers.InitPayment(payment.New(initializers.LoadPayhereConfig()))

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:5174", "https://www.ogee-era.lk"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.UserRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	server.Run()
}
