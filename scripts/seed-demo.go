package main

import (
	"fmt"
	"log"
	"time"

	"distrisync/internal/config"
	"distrisync/internal/database"
	"distrisync/internal/models"
	"distrisync/internal/repository"

	"github.com/google/uuid"
)

// Seeds the local store with demo data for development. Wipes whatever the
// store currently holds, so never run it against a vendor's real database.
func main() {
	fmt.Println("Seeding demo data...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open local database:", err)
	}

	fmt.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Order{},
		&models.Draft{},
		&models.Client{},
		&models.PriceListItem{},
		&models.PriceList{},
		&models.Product{},
		&models.Meta{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			log.Fatal("Failed to clear table:", err)
		}
	}

	store := repository.NewStore(db)

	products := []models.Product{
		{ID: 1, Nombre: "Yerba Mate 1kg", SKU: "YM-1000", PrecioUnitario: 4200, EnStock: true},
		{ID: 2, Nombre: "Azucar 1kg", SKU: "AZ-1000", PrecioUnitario: 950, EnStock: true},
		{ID: 3, Nombre: "Harina 000 1kg", SKU: "HA-0001", PrecioUnitario: 780, EnStock: true},
		{ID: 4, Nombre: "Aceite Girasol 1.5L", SKU: "AC-1500", PrecioUnitario: 2650, EnStock: false},
		{ID: 5, Nombre: "Galletitas Surtidas", SKU: "GA-0500", PrecioUnitario: 1150, EnStock: true, Archivado: true},
	}
	if err := store.Products.ReplaceAll(products); err != nil {
		log.Fatal("Failed to seed products:", err)
	}

	lists := []models.PriceList{
		{ID: 1, Nombre: "Mayorista", Activa: true, FechaCreacion: time.Now().UTC()},
	}
	items := []models.PriceListItem{
		{ListaID: 1, ProductoID: 1, Precio: 3900},
		{ListaID: 1, ProductoID: 2, Precio: 870},
	}
	if err := store.PriceLists.ReplaceAll(lists, items); err != nil {
		log.Fatal("Failed to seed price lists:", err)
	}

	serverID := int64(101)
	clients := []models.Client{
		{
			LocalID:        uuid.NewString(),
			ServerID:       &serverID,
			NombreComercio: "Almacen Don Pedro",
			NombreContacto: "Pedro Gonzalez",
			Direccion:      "Av. San Martin 1420",
			Telefono:       "3764-555001",
			Status:         models.StatusSynced,
		},
		{
			LocalID:        uuid.NewString(),
			NombreComercio: "Kiosco La Esquina",
			NombreContacto: "Marta Diaz",
			Direccion:      "Calle 12 N 340",
			Telefono:       "3764-555002",
			Status:         models.StatusPendingSync,
		},
	}
	if err := store.Clients.BulkUpsert(clients); err != nil {
		log.Fatal("Failed to seed clients:", err)
	}

	fmt.Printf("Seeded %d products, %d price lists, %d clients\n", len(products), len(lists), len(clients))
}
