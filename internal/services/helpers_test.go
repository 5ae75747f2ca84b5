package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"distrisync/internal/database"
	"distrisync/internal/models"
	"distrisync/internal/repository"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Initialize(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return repository.NewStore(db)
}

func seedCatalog(t *testing.T, store *repository.Store) {
	t.Helper()
	err := store.Products.ReplaceAll([]models.Product{
		{ID: 1, Nombre: "Yerba Mate 1kg", SKU: "YM-1000", PrecioUnitario: 4200, EnStock: true},
		{ID: 2, Nombre: "Azucar 1kg", SKU: "AZ-1000", PrecioUnitario: 950, EnStock: true},
		{ID: 3, Nombre: "Galletitas", SKU: "GA-0500", PrecioUnitario: 1150, EnStock: true, Archivado: true},
	})
	if err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}

func seedClient(t *testing.T, store *repository.Store, localID string, serverID *int64, status models.SyncStatus) *models.Client {
	t.Helper()
	client := &models.Client{
		LocalID:        localID,
		ServerID:       serverID,
		NombreComercio: "Almacen " + localID,
		Status:         status,
	}
	if err := store.Clients.Upsert(client); err != nil {
		t.Fatalf("failed to seed client %s: %v", localID, err)
	}
	return client
}

func seedOrder(t *testing.T, store *repository.Store, order *models.Order) *models.Order {
	t.Helper()
	if order.Fecha.IsZero() {
		order.Fecha = time.Now().UTC()
	}
	if err := store.Orders.Upsert(order); err != nil {
		t.Fatalf("failed to seed order %s: %v", order.LocalID, err)
	}
	return order
}

func int64Ptr(v int64) *int64 { return &v }
