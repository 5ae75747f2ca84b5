package services

import (
	"distrisync/internal/models"
	"distrisync/internal/repository"

	"github.com/google/uuid"
)

type ClientInput struct {
	NombreComercio string `json:"nombre_comercio"`
	NombreContacto string `json:"nombre_contacto"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
}

type ClientService interface {
	CreateClient(input ClientInput) (*models.Client, error)
	UpdateClient(localID string, input ClientInput) (*models.Client, error)
	GetClient(localID string) (*models.Client, error)
	ListClients() ([]models.Client, error)
	ListByStatus(status models.SyncStatus) ([]models.Client, error)
}

type clientService struct {
	store *repository.Store
}

func NewClientService(store *repository.Store) ClientService {
	return &clientService{store: store}
}

func (s *clientService) CreateClient(input ClientInput) (*models.Client, error) {
	if input.NombreComercio == "" {
		return nil, newValidationError("nombre_comercio is required")
	}

	client := &models.Client{
		LocalID:        uuid.NewString(),
		NombreComercio: input.NombreComercio,
		NombreContacto: input.NombreContacto,
		Direccion:      input.Direccion,
		Telefono:       input.Telefono,
		Status:         models.StatusPendingSync,
	}
	if err := s.store.Clients.Upsert(client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClient edits a client locally. Even a previously synced client goes
// back to pending_sync so the next pass pushes the change.
func (s *clientService) UpdateClient(localID string, input ClientInput) (*models.Client, error) {
	if input.NombreComercio == "" {
		return nil, newValidationError("nombre_comercio is required")
	}

	client, err := s.store.Clients.GetByLocalID(localID)
	if err != nil {
		return nil, err
	}

	client.NombreComercio = input.NombreComercio
	client.NombreContacto = input.NombreContacto
	client.Direccion = input.Direccion
	client.Telefono = input.Telefono
	client.Status = models.StatusPendingSync
	client.Retries = 0
	if err := s.store.Clients.Upsert(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClient(localID string) (*models.Client, error) {
	return s.store.Clients.GetByLocalID(localID)
}

func (s *clientService) ListClients() ([]models.Client, error) {
	return s.store.Clients.GetAll()
}

func (s *clientService) ListByStatus(status models.SyncStatus) ([]models.Client, error) {
	return s.store.Clients.GetByStatus(status)
}
