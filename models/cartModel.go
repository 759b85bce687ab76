package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID    int    `json:"cartId"`
	ProductID int    `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type Cart struct {
	gorm.Model
	UserID int        `json:"userId" gorm:"uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}
