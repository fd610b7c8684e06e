package service

import (
	"errors"
	"strings"

	"go-boutique-ws/internal/events"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBuyerRequired = errors.New("a customer or a buyer name is required")
	ErrBuyerConflict = errors.New("customer and buyer name are mutually exclusive")
)

// SaleInput is the record-sale form. Exactly one of CustomerID and BuyerName
// identifies the buyer; guests carry only the name.
type SaleInput struct {
	ProductID   uuid.UUID  `json:"product_id" validate:"uuid_required"`
	CustomerID  *uuid.UUID `json:"customer_id"`
	BuyerName   string     `json:"buyer_name"`
	TotalAmount float64    `json:"total_amount" validate:"gt=0"`
	AmountPaid  float64    `json:"amount_paid" validate:"gte=0"`
}

// ValidateSaleInput runs field validation plus the buyer exclusivity rule
// before any write is issued.
func ValidateSaleInput(in *SaleInput) error {
	if err := validator.FirstError(validator.ValidateStruct(in)); err != nil {
		return err
	}
	hasName := strings.TrimSpace(in.BuyerName) != ""
	if in.CustomerID == nil && !hasName {
		return ErrBuyerRequired
	}
	if in.CustomerID != nil && hasName {
		return ErrBuyerConflict
	}
	return nil
}

// BuildSale computes the derived sale fields at submit time: balance due and
// payment status are written once and never recomputed later.
func BuildSale(in *SaleInput) *model.Sale {
	balance := in.TotalAmount - in.AmountPaid
	sale := &model.Sale{
		ProductID:     in.ProductID,
		TotalAmount:   in.TotalAmount,
		AmountPaid:    in.AmountPaid,
		BalanceDue:    balance,
		PaymentStatus: model.PaymentStatusFor(in.TotalAmount, in.AmountPaid),
	}
	if in.CustomerID != nil {
		sale.CustomerID = in.CustomerID
	} else {
		name := strings.TrimSpace(in.BuyerName)
		sale.BuyerName = &name
	}
	return sale
}

// NextStock applies one unit sold: floored at zero, status flipping to Sold
// Out when the floor is reached.
func NextStock(stock int) (int, model.ProductStatus) {
	next := stock - 1
	if next < 0 {
		next = 0
	}
	return next, model.StatusForStock(next)
}

type SaleService interface {
	RecordSale(in *SaleInput) (*model.Sale, error)
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	db           *gorm.DB
	bus          *events.Bus
}

func NewSaleService(pRepo repository.ProductRepository, cRepo repository.CustomerRepository, sRepo repository.SaleRepository, db *gorm.DB, bus *events.Bus) SaleService {
	return &saleService{
		productRepo:  pRepo,
		customerRepo: cRepo,
		saleRepo:     sRepo,
		db:           db,
		bus:          bus,
	}
}

// RecordSale inserts the sale, decrements product stock and bumps the
// customer's balance in one transaction: no partial state survives a failure
// of any of the three writes. The product-updated event is published after
// commit.
func (s *saleService) RecordSale(in *SaleInput) (*model.Sale, error) {
	if err := ValidateSaleInput(in); err != nil {
		return nil, err
	}

	sale := BuildSale(in)
	var updated model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		// Lock the row so concurrent sales serialize on the stock read.
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", in.ProductID).Error; err != nil {
			return ErrProductNotFound
		}

		newStock, status := NextStock(product.Stock)

		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}
		if err := s.productRepo.UpdateStock(tx, product.ID, newStock, status); err != nil {
			return err
		}
		if sale.CustomerID != nil && sale.BalanceDue != 0 {
			if err := s.customerRepo.AddToBalance(tx, *sale.CustomerID, sale.BalanceDue); err != nil {
				return err
			}
		}

		product.Stock = newStock
		product.Status = status
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(model.Updated(&updated))
	return sale, nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}
