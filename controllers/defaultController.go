package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Ogee Era API.

The following are the endpoints for this API:

USER
- POST "/api/user/register" - Create customer account
- POST "/api/user/login" - Customer login
- POST "/api/user/admin" - Admin console login
- POST "/api/user/forgot-password" - Request password reset
- POST "/api/user/reset-password/:resetToken" - Reset password

PRODUCT
- GET  "/api/product/list" - List products
- GET  "/api/product/:id" - Get product by ID
- POST "/api/product/add" - Add product (admin)
- POST "/api/product/update/:id" - Update product (admin)
- POST "/api/product/remove" - Remove product (admin)

CART
- POST "/api/cart/add" - Add item to cart
- POST "/api/cart/update" - Update cart item quantity
- GET  "/api/cart" - Get cart

ORDER
- POST "/api/order/place" - Place COD order
- POST "/api/order/create-pending" - Create pending PayHere order
- POST "/api/order/payhere-notify" - PayHere payment notification
- GET  "/api/order/payhere-success" - PayHere redirect on success
- GET  "/api/order/payhere-failure" - PayHere redirect on failure
- POST "/api/order/userorders" - Orders for the logged-in user
- POST "/api/order/list" - All orders (admin)
- POST "/api/order/status" - Update order status (admin)
- POST "/api/order/delete" - Delete order (admin)
- GET  "/api/order/export" - Export orders as CSV (admin)
- GET  "/api/order/:orderId/payment" - PayHere payment details (admin)
- GET  "/api/order/undelivered-count" - Undelivered order count (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
