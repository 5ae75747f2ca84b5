package services

import (
	"testing"
	"time"

	"distrisync/internal/models"
)

func TestListProductsExcludesArchived(t *testing.T) {
	store := newTestStore(t)
	seedCatalog(t, store)
	svc := NewCatalogService(store)

	products, err := svc.ListProducts()
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	for _, p := range products {
		if p.Archivado {
			t.Errorf("archived product %d must not be offered for sale", p.ID)
		}
	}
	if len(products) != 2 {
		t.Errorf("expected 2 sellable products, got %d", len(products))
	}

	// The archived product is still resolvable for old orders.
	archived, err := svc.GetProduct(3)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if !archived.Archivado {
		t.Error("expected product 3 archived")
	}
}

func TestListPriceListsJoinsItems(t *testing.T) {
	store := newTestStore(t)
	if err := store.PriceLists.ReplaceAll(
		[]models.PriceList{
			{ID: 1, Nombre: "Mayorista", Activa: true, FechaCreacion: time.Now().UTC()},
			{ID: 2, Nombre: "Retirada", Activa: false},
		},
		[]models.PriceListItem{
			{ListaID: 1, ProductoID: 1, Precio: 3900},
			{ListaID: 1, ProductoID: 2, Precio: 870},
			{ListaID: 2, ProductoID: 1, Precio: 1},
		},
	); err != nil {
		t.Fatalf("seed price lists: %v", err)
	}
	svc := NewCatalogService(store)

	views, err := svc.ListPriceLists()
	if err != nil {
		t.Fatalf("ListPriceLists failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("inactive lists must not be returned, got %d", len(views))
	}
	if views[0].ID != 1 || len(views[0].Items) != 2 {
		t.Errorf("expected list 1 with its 2 items, got %+v", views[0])
	}
}
