package service

import (
	"errors"
	"fmt"
	"path/filepath"

	"go-boutique-ws/internal/events"
	"go-boutique-ws/internal/model"
	"go-boutique-ws/internal/repository"
	"go-boutique-ws/pkg/storage"
	"go-boutique-ws/pkg/validator"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrProductNotFound = errors.New("product not found")

// ImageFile is one uploaded blob from a multipart form.
type ImageFile struct {
	Name string
	Data []byte
}

type ProductService interface {
	CreateProduct(req *model.Product) error
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	UploadImages(files []ImageFile) ([]string, error)
}

type productService struct {
	productRepo repository.ProductRepository
	blobs       storage.Store
	bus         *events.Bus
}

func NewProductService(pRepo repository.ProductRepository, blobs storage.Store, bus *events.Bus) ProductService {
	return &productService{
		productRepo: pRepo,
		blobs:       blobs,
		bus:         bus,
	}
}

// CreateProduct validates the record, derives status from stock and publishes
// the insert event after the write succeeds.
func (s *productService) CreateProduct(req *model.Product) error {
	if err := validator.FirstError(validator.ValidateStruct(req)); err != nil {
		return err
	}

	req.Status = model.StatusForStock(req.Stock)
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.bus.Publish(model.Inserted(req))
	return nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	if err := validator.FirstError(validator.ValidateStruct(req)); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Category = req.Category
	existing.Stock = req.Stock
	existing.Status = model.StatusForStock(req.Stock)
	if req.ImageURLs != nil {
		existing.ImageURLs = req.ImageURLs
	}
	if req.CustomFields != nil {
		existing.CustomFields = req.CustomFields
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.bus.Publish(model.Updated(existing))
	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.bus.Publish(model.Removed(id))
	return nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// UploadImages stores every blob concurrently and joins the batch
// all-or-nothing: if any upload fails, no URL list is returned.
func (s *productService) UploadImages(files []ImageFile) ([]string, error) {
	urls := make([]string, len(files))

	var g errgroup.Group
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			name := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(f.Name))
			url, err := s.blobs.Save(name, f.Data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
