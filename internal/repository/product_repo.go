package repository

import (
	"go-boutique-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	ListNewest(limit int) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, status model.ProductStatus) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

// ListNewest is the bounded catalog read: newest-first by creation time,
// capped at limit rows.
func (r *productRepo) ListNewest(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// UpdateStock takes the *gorm.DB (tx) so it can run inside a transaction.
// Status is written together with stock so the two never diverge.
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, status model.ProductStatus) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":  newStock,
			"status": status,
		}).Error
}
