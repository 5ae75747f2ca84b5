package services

import (
	"distrisync/internal/models"
	"distrisync/internal/repository"
)

type OrderService interface {
	GetOrder(localID string) (*models.Order, error)
	ListOrders() ([]models.Order, error)
	ListByCliente(clienteLocalID string) ([]models.Order, error)
	ListByStatus(status models.SyncStatus) ([]models.Order, error)
}

type orderService struct {
	store *repository.Store
}

func NewOrderService(store *repository.Store) OrderService {
	return &orderService{store: store}
}

func (s *orderService) GetOrder(localID string) (*models.Order, error) {
	return s.store.Orders.GetByLocalID(localID)
}

func (s *orderService) ListOrders() ([]models.Order, error) {
	return s.store.Orders.GetAll()
}

func (s *orderService) ListByCliente(clienteLocalID string) ([]models.Order, error) {
	return s.store.Orders.GetByClienteLocalID(clienteLocalID)
}

func (s *orderService) ListByStatus(status models.SyncStatus) ([]models.Order, error) {
	return s.store.Orders.GetByStatus(status)
}
