package model

import "github.com/google/uuid"

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPending PaymentStatus = "Pending"
)

// PaymentStatusFor derives the payment status at write time. It is never
// recomputed after the sale is stored.
func PaymentStatusFor(total, paid float64) PaymentStatus {
	if total-paid > 0 {
		if paid > 0 {
			return PaymentPartial
		}
		return PaymentPending
	}
	return PaymentPaid
}

// Sale records one transaction. CustomerID and BuyerName are mutually
// exclusive: registered customers carry the reference, walk-in buyers only a
// free-text name.
type Sale struct {
	BaseModel
	ProductID     uuid.UUID     `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product       Product       `json:"product" validate:"-"`
	CustomerID    *uuid.UUID    `gorm:"type:uuid" json:"customer_id,omitempty"`
	Customer      *Customer     `json:"customer,omitempty" validate:"-"`
	BuyerName     *string       `gorm:"type:varchar(255)" json:"buyer_name,omitempty"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount" validate:"gt=0"`
	AmountPaid    float64       `gorm:"not null" json:"amount_paid" validate:"gte=0"`
	BalanceDue    float64       `gorm:"not null" json:"balance_due"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);not null" json:"payment_status"`
}
