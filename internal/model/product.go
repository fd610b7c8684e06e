package model

type ProductStatus string

const (
	StatusAvailable ProductStatus = "Available"
	StatusSoldOut   ProductStatus = "Sold Out"
)

// StatusForStock derives the stored status from a stock level. Every write
// path recomputes status through this so stock and status cannot drift apart.
func StatusForStock(stock int) ProductStatus {
	if stock > 0 {
		return StatusAvailable
	}
	return StatusSoldOut
}

type Product struct {
	BaseModel
	Name         string            `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description  string            `gorm:"type:text;not null" json:"description" validate:"required"`
	Price        float64           `gorm:"not null" json:"price" validate:"gt=0"`
	Category     string            `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Stock        int               `gorm:"default:0" json:"stock" validate:"gte=0"`
	Status       ProductStatus     `gorm:"type:varchar(20);not null;default:'Available'" json:"status"`
	ImageURLs    []string          `gorm:"serializer:json" json:"image_urls"`
	CustomFields map[string]string `gorm:"serializer:json" json:"custom_fields,omitempty"`
}
