package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/IsuruKaushika/Ogee-Era/initializers"
	"github.com/IsuruKaushika/Ogee-Era/middlewares"
	"github.com/IsuruKaushika/Ogee-Era/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func getOrCreateCart(userID int) (models.Cart, error) {
	var cart models.Cart
	err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = initializers.DB.Create(&cart).Error
	}
	return cart, err
}

// AddToCart adds a product/size line to the user's cart, merging quantities
// when the same line already exists.
func AddToCart(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var cartItem models.CartItem
	if err := ctx.ShouldBindJSON(&cartItem); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	cart, err := getOrCreateCart(userID)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateCart)
		return
	}

	var existingItem models.CartItem
	err = initializers.DB.
		Where("cart_id = ? AND product_id = ? AND size = ?", cart.ID, cartItem.ProductID, cartItem.Size).
		First(&existingItem).Error

	if err == nil {
		existingItem.Quantity += cartItem.Quantity
		if err := initializers.DB.Save(&existingItem).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"id":      existingItem.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	cartItem.CartID = int(cart.ID)
	if err := initializers.DB.Create(&cartItem).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to add item to cart")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Item added to cart",
		"id":      cartItem.ID,
	})
}

// UpdateCartItem sets the quantity of a cart line; zero removes it.
func UpdateCartItem(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input struct {
		ItemID   int `json:"itemId" binding:"required"`
		Quantity int `json:"quantity" binding:"min=0"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var cart models.Cart
	if err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		return
	}

	if input.Quantity == 0 {
		result := initializers.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}, input.ItemID)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item removed"})
		return
	}

	result := initializers.DB.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", input.ItemID, cart.ID).
		Update("quantity", input.Quantity)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update cart item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart item not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart item updated"})
}

// GetCart returns the authenticated user's cart with its items.
func GetCart(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var cart models.Cart
	result := initializers.DB.
		Where("user_id = ?", userID).
		Preload("Items").
		First(&cart)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Cart not found")
		} else {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}

// ClearCart empties a user's cart. Consumed by the order flow after a COD
// placement or a confirmed gateway payment; a missing cart is not an error.
func ClearCart(userID int) error {
	var cart models.Cart
	err := initializers.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return initializers.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}
