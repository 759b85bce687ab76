package initializers

import (
	"log"

	"github.com/IsuruKaushika/Ogee-Era/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	log.Println("Database synced successfully.")
}
