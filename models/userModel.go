package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name               string `json:"name"`
	Email              string `json:"email" gorm:"uniqueIndex"`
	Password           string `json:"-"`
	Role               string `json:"role"`
	PasswordResetToken string `json:"-"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
