package services

import (
	"distrisync/internal/models"
	"distrisync/internal/repository"
)

// PriceListView is an active price list joined with its item overrides, the
// shape the UI renders on the pricing screen.
type PriceListView struct {
	models.PriceList
	Items []models.PriceListItem `json:"items"`
}

// CatalogService reads the downloaded catalog for the UI caller. Everything
// here is server-owned data; the only writer is the sync download phase.
type CatalogService interface {
	ListProducts() ([]models.Product, error)
	GetProduct(id int64) (*models.Product, error)
	ListPriceLists() ([]PriceListView, error)
}

type catalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) CatalogService {
	return &catalogService{store: store}
}

// ListProducts returns the sellable catalog. Archived products stay in the
// store so old orders can still display them, but are not offered for sale.
func (s *catalogService) ListProducts() ([]models.Product, error) {
	return s.store.Products.GetActive()
}

func (s *catalogService) GetProduct(id int64) (*models.Product, error) {
	return s.store.Products.GetByID(id)
}

func (s *catalogService) ListPriceLists() ([]PriceListView, error) {
	lists, err := s.store.PriceLists.GetActiveLists()
	if err != nil {
		return nil, err
	}

	views := make([]PriceListView, 0, len(lists))
	for _, list := range lists {
		items, err := s.store.PriceLists.GetItems(list.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, PriceListView{PriceList: list, Items: items})
	}
	return views, nil
}
