package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go-boutique-ws/internal/events"
	"go-boutique-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	byID map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) Create(p *model.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) ListNewest(limit int) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) Update(p *model.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, status model.ProductStatus) error {
	p, ok := r.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock = newStock
	p.Status = status
	return nil
}

type fakeBlobs struct {
	mutex sync.Mutex
	fail  bool
	saved int
}

func (f *fakeBlobs) Save(name string, data []byte) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.fail {
		return "", errors.New("upload failed")
	}
	f.saved++
	return "http://blobs/" + name, nil
}

func validProduct() *model.Product {
	return &model.Product{
		Name:        "Silk Scarf",
		Description: "Hand-printed silk scarf",
		Price:       350,
		Category:    "Fashion",
		Stock:       4,
	}
}

func TestCreateProductRejectsInvalidInputBeforeWrite(t *testing.T) {
	repo := newFakeProductRepo()
	bus := events.NewBus()
	sub := bus.Subscribe(8)
	svc := NewProductService(repo, &fakeBlobs{}, bus)

	p := validProduct()
	p.Name = ""
	require.Error(t, svc.CreateProduct(p))

	require.Empty(t, repo.byID, "nothing reaches the backend on validation failure")
	select {
	case ev := <-sub:
		t.Fatalf("unexpected event %s", ev.Type)
	default:
	}
}

func TestCreateProductDerivesStatusAndPublishes(t *testing.T) {
	repo := newFakeProductRepo()
	bus := events.NewBus()
	sub := bus.Subscribe(8)
	svc := NewProductService(repo, &fakeBlobs{}, bus)

	p := validProduct()
	p.Stock = 0
	p.Status = model.StatusAvailable // caller-set status is overridden
	require.NoError(t, svc.CreateProduct(p))

	require.Equal(t, model.StatusSoldOut, p.Status)

	ev := <-sub
	require.Equal(t, model.EventInserted, ev.Type)
	require.Equal(t, p.ID, ev.ID)
}

func TestUpdateProductRecomputesStatus(t *testing.T) {
	repo := newFakeProductRepo()
	bus := events.NewBus()
	sub := bus.Subscribe(8)
	svc := NewProductService(repo, &fakeBlobs{}, bus)

	p := validProduct()
	require.NoError(t, svc.CreateProduct(p))
	<-sub

	req := validProduct()
	req.Stock = 0
	updated, err := svc.UpdateProduct(p.ID, req)
	require.NoError(t, err)
	require.Equal(t, model.StatusSoldOut, updated.Status)

	ev := <-sub
	require.Equal(t, model.EventUpdated, ev.Type)
}

func TestUpdateProductMissingID(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), &fakeBlobs{}, events.NewBus())

	_, err := svc.UpdateProduct(uuid.New(), validProduct())
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductPublishesRemoval(t *testing.T) {
	repo := newFakeProductRepo()
	bus := events.NewBus()
	sub := bus.Subscribe(8)
	svc := NewProductService(repo, &fakeBlobs{}, bus)

	p := validProduct()
	require.NoError(t, svc.CreateProduct(p))
	<-sub

	require.NoError(t, svc.DeleteProduct(p.ID))
	ev := <-sub
	require.Equal(t, model.EventRemoved, ev.Type)
	require.Equal(t, p.ID, ev.ID)

	require.ErrorIs(t, svc.DeleteProduct(p.ID), ErrProductNotFound)
}

func TestUploadImagesAllOrNothing(t *testing.T) {
	blobs := &fakeBlobs{fail: true}
	svc := NewProductService(newFakeProductRepo(), blobs, events.NewBus())

	files := []ImageFile{
		{Name: "front.jpg", Data: []byte("a")},
		{Name: "back.jpg", Data: []byte("b")},
	}
	urls, err := svc.UploadImages(files)
	require.Error(t, err)
	require.Nil(t, urls, "no partial URL list on failure")

	blobs.fail = false
	urls, err = svc.UploadImages(files)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, u := range urls {
		require.Contains(t, u, "http://blobs/")
	}
}
