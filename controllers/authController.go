package controllers

import (
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/IsuruKaushika/Ogee-Era/initializers"
	"github.com/IsuruKaushika/Ogee-Era/models"
	"github.com/IsuruKaushika/Ogee-Era/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgResetLinkSent         = "Check your email for a password reset link."
	msgUserCreated           = "User created successfully."
	msgUserNotFound          = "user with this email does not exist"
	msgResetTokenError       = "There was an error trying to generate password reset link. Try again later."
	msgUnableToSaveToken     = "unable to save reset token."
	msgUnableToResetPassword = "unable to reset password"
	msgInvalidResetLink      = "Invalid or expired reset link"
	msgFailedToCreateCart    = "failed to create cart"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(userID uint, email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

// Send a password reset email
func sendPasswordResetEmail(user models.User, resetToken string) error {
	emailData := utils.EmailData{
		Name:      user.Name,
		Message:   "You requested a password reset. Click the button below to reset your password.",
		ActionURL: os.Getenv("FRONTEND_URL") + "/reset-password?token=" + url.QueryEscape(resetToken),
		LogoURL:   "https://www.ogee-era.lk/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return utils.SendEmail(user.Email, "Ogee Era Account Password Reset", emailData, templatePath)
}

// Register handles customer registration.
func Register(ctx *gin.Context) {
	var signUpData struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing models.User
	result := initializers.DB.Where("email = ?", signUpData.Email).Find(&existing)
	if result.Error != nil {
		log.Println("Database error during user check:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Name:     signUpData.Name,
		Email:    signUpData.Email,
		Password: hashedPassword,
		Role:     "user",
	}
	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tokenString, err := generateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "token": tokenString})
}

// Login handles customer authentication.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

// AdminLogin authenticates the console operator against the credentials
// configured in the environment.
func AdminLogin(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("Admin credentials are not configured")
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if loginData.Email != adminEmail || loginData.Password != adminPassword {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(0, adminEmail, "admin")
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

// SendPasswordResetLink sends a password reset link to the user's email.
func SendPasswordResetLink(ctx *gin.Context) {
	type ForgotPasswordBody struct {
		Email string `json:"email" binding:"required,email"`
	}

	var forgotPasswordData ForgotPasswordBody
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(forgotPasswordData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserNotFound)
		return
	}

	passwordResetToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Reset token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgResetTokenError)
		return
	}

	if result := initializers.DB.Model(&models.User{}).
		Where("email = ?", forgotPasswordData.Email).
		Update("password_reset_token", passwordResetToken); result.Error != nil {

		log.Println("Error saving reset token:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSaveToken)
		return
	}

	if err := sendPasswordResetEmail(user, passwordResetToken); err != nil {
		log.Println("Error sending password reset email:", err)
	} else {
		log.Println("Password reset email sent successfully to:", forgotPasswordData.Email)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
}

// ResetPassword resets a user's password using a reset token.
func ResetPassword(ctx *gin.Context) {
	type ResetPasswordInfo struct {
		Password string `json:"password" binding:"required,min=8"`
	}

	var resetPasswordData ResetPasswordInfo
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		log.Println("Invalid reset password data:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := hashPassword(resetPasswordData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	resetToken := ctx.Param("resetToken")
	result := initializers.DB.Model(&models.User{}).
		Where("password_reset_token = ? AND password_reset_token != ''", resetToken).
		Updates(map[string]any{
			"password":             hashedPassword,
			"password_reset_token": "",
		})

	if result.Error != nil {
		log.Println("Error resetting password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToResetPassword)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidResetLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password reset successful"})
}
