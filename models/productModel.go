package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stock statuses shown on the storefront.
const (
	StockInStock      = "In Stock"
	StockOutOfStock   = "Out of Stock"
	StockLimitedStock = "Limited Stock"
)

// IsValidStockStatus reports whether s is a recognized stock status.
func IsValidStockStatus(s string) bool {
	switch s {
	case StockInStock, StockOutOfStock, StockLimitedStock:
		return true
	}
	return false
}

type Product struct {
	gorm.Model
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Discount    int            `json:"discount"`
	Category    string         `json:"category"`
	SubCategory string         `json:"subCategory"`
	Sizes       datatypes.JSON `json:"sizes"`
	Images      datatypes.JSON `json:"image"`
	Bestseller  bool           `json:"bestseller"`
	StockStatus string         `json:"stockStatus"`
	SizeChart   string         `json:"sizeChart"`
}
