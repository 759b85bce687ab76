package controllers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/IsuruKaushika/Ogee-Era/initializers"
	"github.com/IsuruKaushika/Ogee-Era/middlewares"
	"github.com/IsuruKaushika/Ogee-Era/models"
	"github.com/IsuruKaushika/Ogee-Era/payment"
	"github.com/IsuruKaushika/Ogee-Era/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// payhere is built once in main from the environment-loaded config and is
// never reassigned afterwards.
var payhere *payment.Gateway

func InitPayment(gateway *payment.Gateway) {
	payhere = gateway
}

// Seams for the order placement saga's secondary effects, overridable in tests.
var (
	clearCartFn           = ClearCart
	sendOrderConfirmation = sendOrderConfirmationEmail
)

type orderItemInput struct {
	ProductID int     `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Size      string  `json:"size"`
}

type addressInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Country   string `json:"country" binding:"required"`
	Zipcode   string `json:"zipcode"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type createOrderInput struct {
	Items   []orderItemInput `json:"items" binding:"required,min=1,dive"`
	Address addressInput     `json:"address" binding:"required"`
	Amount  float64          `json:"amount" binding:"required,gt=0"`
}

func buildOrder(userID int, input createOrderInput, paymentMethod, status string) models.Order {
	order := models.Order{
		UserID:        userID,
		FirstName:     input.Address.FirstName,
		LastName:      input.Address.LastName,
		Street:        input.Address.Street,
		City:          input.Address.City,
		State:         input.Address.State,
		Country:       input.Address.Country,
		Zipcode:       input.Address.Zipcode,
		Phone:         input.Address.Phone,
		Email:         input.Address.Email,
		Amount:        input.Amount,
		PaymentMethod: paymentMethod,
		Payment:       false,
		Status:        status,
	}
	for _, item := range input.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return order
}

func sendOrderConfirmationEmail(order models.Order) error {
	emailData := utils.EmailData{
		Name:    order.FirstName,
		Message: "Thank you for shopping with Ogee Era! Your order has been received.",
		OrderID: order.ID,
		Amount:  payment.FormatAmount(order.Amount),
		LogoURL: "https://www.ogee-era.lk/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(order.Email, "Ogee Era Order Confirmation", emailData, templatePath)
}

// PlaceOrder handles a Cash-on-Delivery checkout. The order record is the
// primary effect; cart clear and the confirmation mail are secondary steps
// whose failure must not fail the placement.
func PlaceOrder(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input createOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order data")
		return
	}

	order := buildOrder(userID, input, models.PaymentMethodCOD, models.StatusPlaced)
	if err := initializers.DB.Create(&order).Error; err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to place order")
		return
	}

	if err := clearCartFn(userID); err != nil {
		log.Printf("Order %d placed but cart clear failed for user %d: %v", order.ID, userID, err)
	}

	if err := sendOrderConfirmation(order); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": "Order Placed Successfully",
		"orderId": order.ID,
	})
}

// CreatePendingOrder handles a PayHere checkout: it records the order in the
// pending state and returns the signed launch parameters for the hosted
// payment page. The cart is cleared only after the payment notification
// confirms success.
func CreatePendingOrder(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input createOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order data")
		return
	}

	order := buildOrder(userID, input, models.PaymentMethodPayhere, models.StatusPending)
	if err := initializers.DB.Create(&order).Error; err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}

	launch := payhere.BuildLaunch(strconv.Itoa(int(order.ID)), order.Amount)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success":    true,
		"message":    "Order Created Successfully",
		"orderId":    order.ID,
		"merchantId": launch.MerchantID,
		"hash":       launch.Hash,
		"amount":     launch.Amount,
		"currency":   launch.Currency,
		"sandbox":    launch.Sandbox,
	})
}

// PayhereNotify handles the asynchronous payment notification from PayHere.
// The transition out of the pending state is a conditional update keyed on
// the current status, so concurrent duplicate deliveries cannot double-apply
// side effects: exactly one request wins the update, the rest observe an
// already-settled order and report success without acting.
func PayhereNotify(ctx *gin.Context) {
	var notification payment.Notification
	if err := ctx.ShouldBind(&notification); err != nil {
		log.Println("Malformed payment notification:", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid notification payload"})
		return
	}

	if err := payhere.VerifyNotification(notification); err != nil {
		log.Printf("Rejected payment notification for order %s: %v", notification.OrderID, err)
		if errors.Is(err, payment.ErrInvalidMerchant) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid merchant"})
		} else {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid signature"})
		}
		return
	}

	orderID, err := strconv.Atoi(notification.OrderID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		} else {
			log.Println("Database error:", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load order"})
		}
		return
	}

	rawDetails, err := json.Marshal(notification)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record notification"})
		return
	}

	if notification.Success() {
		result := initializers.DB.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.StatusPending).
			Updates(map[string]any{
				"status":          models.StatusProcessing,
				"payment":         true,
				"payment_id":      notification.PaymentID,
				"payment_details": datatypes.JSON(rawDetails),
			})
		if result.Error != nil {
			log.Println("Failed to apply payment:", result.Error)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order"})
			return
		}

		if result.RowsAffected == 0 {
			// Lost the conditional update: the order already left pending.
			// A replayed success notification for an already-paid order is
			// idempotent success; anything else is logged and left alone.
			if order.Payment && order.PaymentID == notification.PaymentID {
				ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment already recorded"})
				return
			}
			log.Printf("Ignoring success notification for order %d in state %q", orderID, order.Status)
			ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification ignored"})
			return
		}

		if err := clearCartFn(order.UserID); err != nil {
			log.Printf("Order %d paid but cart clear failed for user %d: %v", orderID, order.UserID, err)
		}

		order.Payment = true
		order.PaymentID = notification.PaymentID
		order.Status = models.StatusProcessing
		if err := sendOrderConfirmation(order); err != nil {
			log.Println("Error sending order confirmation email:", err)
		}

		ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified and order updated"})
		return
	}

	// Non-success status code: record the outcome and park the order in the
	// terminal Failed state. No cart clear on this path.
	result := initializers.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, models.StatusPending).
		Updates(map[string]any{
			"status":          models.StatusFailed,
			"payment_details": datatypes.JSON(rawDetails),
		})
	if result.Error != nil {
		log.Println("Failed to record payment failure:", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order"})
		return
	}
	if result.RowsAffected == 0 {
		log.Printf("Ignoring failure notification for order %d in state %q", orderID, order.Status)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": false, "message": "Payment failed or canceled"})
}

// PayhereSuccess is the user-redirect lander after a completed payment. The
// authoritative state change comes from the notify webhook, not from here.
func PayhereSuccess(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Payment completed successfully"})
}

// PayhereFailure is the user-redirect lander after an abandoned payment.
func PayhereFailure(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": false, "message": "Payment was not completed"})
}

// AllOrders returns the full ledger for the admin console, optionally
// filtered by status and payment method equality.
func AllOrders(ctx *gin.Context) {
	var filter struct {
		Status        string `json:"status"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&filter); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid filter")
			return
		}
	}

	query := initializers.DB.Preload("Items").Order("created_at desc")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}

	var orders []models.Order
	if result := query.Find(&orders); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "orders": orders})
}

// UserOrders returns the requesting user's order history.
func UserOrders(ctx *gin.Context) {
	userID, ok := middlewares.UserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "orders": orders})
}

// UpdateStatus lets the admin set any enumerated status on any order.
// Transitions are deliberately unrestricted so mistakes can be corrected, but
// moves against the pipeline ordering are logged for review.
func UpdateStatus(ctx *gin.Context) {
	var statusData struct {
		OrderID int    `json:"orderId" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.IsValidStatus(statusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unrecognized order status: "+statusData.Status)
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, statusData.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	if models.IsBackwardTransition(order.Status, statusData.Status) {
		log.Printf("Backward status transition on order %d: %q -> %q", order.ID, order.Status, statusData.Status)
	}

	if result := initializers.DB.Model(&order).Update("status", statusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Order Status Updated Successfully"})
}

// DeleteOrder removes an order record. No cascading effects beyond the order
// and its line items.
func DeleteOrder(ctx *gin.Context) {
	var deleteData struct {
		OrderID int `json:"orderId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&deleteData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	result := initializers.DB.Delete(&models.Order{}, deleteData.OrderID)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully."})
}

// ExportOrders streams the order ledger as a CSV download for the admin's
// spreadsheet tooling.
func ExportOrders(ctx *gin.Context) {
	var orders []models.Order
	if result := initializers.DB.Preload("Items").Order("created_at asc").Find(&orders); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="orders.csv"`)

	writer := csv.NewWriter(ctx.Writer)
	defer writer.Flush()

	writer.Write([]string{
		"id", "date", "customer", "email", "city", "country",
		"items", "amount", "payment_method", "paid", "payment_id", "status",
	})

	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		writer.Write([]string{
			strconv.Itoa(int(order.ID)),
			order.CreatedAt.Format("2006-01-02 15:04:05"),
			order.FirstName + " " + order.LastName,
			order.Email,
			order.City,
			order.Country,
			strconv.Itoa(itemCount),
			payment.FormatAmount(order.Amount),
			order.PaymentMethod,
			strconv.FormatBool(order.Payment),
			order.PaymentID,
			order.Status,
		})
	}
}

// GetOrderPayment cross-checks a ledger entry against PayHere's record of the
// payment via the merchant Retrieval API.
func GetOrderPayment(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order")
		}
		return
	}

	if order.PaymentMethod != models.PaymentMethodPayhere {
		sendErrorResponse(ctx, http.StatusBadRequest, "Order was not paid through PayHere")
		return
	}

	details, err := payhere.RetrievePayment(strconv.Itoa(orderID))
	if err != nil {
		log.Println("PayHere retrieval error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to retrieve payment from PayHere")
		return
	}

	ctx.Data(http.StatusOK, "application/json", details)
}

// UndeliveredOrderCount feeds the admin dashboard badge.
func UndeliveredOrderCount(ctx *gin.Context) {
	var count int64
	result := initializers.DB.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.StatusDelivered, models.StatusFailed}).
		Count(&count)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count undelivered orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
