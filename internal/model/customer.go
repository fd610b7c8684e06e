package model

// Customer is a registered buyer whose outstanding balance is tracked.
// TotalBalance grows by the balance due of each sale recorded against the
// customer; positive means the customer owes the business.
type Customer struct {
	BaseModel
	Name         string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone        string  `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Email        string  `gorm:"type:varchar(255)" json:"email,omitempty" validate:"omitempty,email"`
	Address      string  `gorm:"type:text" json:"address,omitempty"`
	TotalBalance float64 `gorm:"default:0" json:"total_balance"`
}
