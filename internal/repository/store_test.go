package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"distrisync/internal/database"
	"distrisync/internal/models"

	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Initialize(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return NewStore(db)
}

func TestClientUpsertByLocalID(t *testing.T) {
	store := newTestStore(t)

	client := &models.Client{
		LocalID:        "L1",
		NombreComercio: "Almacen Norte",
		Status:         models.StatusPendingSync,
	}
	if err := store.Clients.Upsert(client); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	client.NombreComercio = "Almacen Norte SRL"
	serverID := int64(42)
	client.ServerID = &serverID
	client.Status = models.StatusSynced
	if err := store.Clients.Upsert(client); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	all, err := store.Clients.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 client after upserting same local id twice, got %d", len(all))
	}
	if all[0].NombreComercio != "Almacen Norte SRL" {
		t.Errorf("expected updated name, got %q", all[0].NombreComercio)
	}
	if all[0].ServerID == nil || *all[0].ServerID != 42 {
		t.Errorf("expected server id 42, got %v", all[0].ServerID)
	}

	got, err := store.Clients.GetByServerID(42)
	if err != nil {
		t.Fatalf("GetByServerID failed: %v", err)
	}
	if got.LocalID != "L1" {
		t.Errorf("expected local id L1, got %q", got.LocalID)
	}
}

func TestClientGetUploadQueue(t *testing.T) {
	store := newTestStore(t)

	clients := []models.Client{
		{LocalID: "L1", NombreComercio: "Pendiente", Status: models.StatusPendingSync},
		{LocalID: "L2", NombreComercio: "Fallido", Status: models.StatusSyncFailed, Retries: 2},
		{LocalID: "L3", NombreComercio: "Sincronizado", Status: models.StatusSynced},
	}
	if err := store.Clients.BulkUpsert(clients); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	queue, err := store.Clients.GetUploadQueue()
	if err != nil {
		t.Fatalf("GetUploadQueue failed: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 clients in upload queue, got %d", len(queue))
	}
	for _, c := range queue {
		if c.Status == models.StatusSynced {
			t.Errorf("synced client %s must not be in the upload queue", c.LocalID)
		}
	}
}

func TestOrderItemsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	order := &models.Order{
		LocalID:        "O1",
		ClienteLocalID: "L1",
		Fecha:          time.Now().UTC(),
		Items: []models.OrderItem{
			{ProductoID: 1, Cantidad: 3, PrecioCongelado: 4200, NombreCongelado: "Yerba Mate 1kg", SKUCongelado: "YM-1000"},
			{ProductoID: 2, Cantidad: 1, PrecioCongelado: 950, NombreCongelado: "Azucar 1kg", SKUCongelado: "AZ-1000"},
		},
		Estado: models.EstadoPendiente,
		Status: models.StatusPendingSync,
	}
	if err := store.Orders.Upsert(order); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := store.Orders.GetByLocalID("O1")
	if err != nil {
		t.Fatalf("GetByLocalID failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].NombreCongelado != "Yerba Mate 1kg" {
		t.Errorf("frozen name lost in round trip: %q", got.Items[0].NombreCongelado)
	}
	if got.Total() != 4200*3+950 {
		t.Errorf("expected total %v, got %v", float64(4200*3+950), got.Total())
	}
}

func TestAssignClienteIDOnlyTouchesUnuploaded(t *testing.T) {
	store := newTestStore(t)

	oldID := int64(7)
	orders := []models.Order{
		{LocalID: "O1", ClienteLocalID: "L1", Status: models.StatusPendingSync},
		{LocalID: "O2", ClienteLocalID: "L1", Status: models.StatusSyncFailed},
		{LocalID: "O3", ClienteLocalID: "L1", Status: models.StatusSynced, ClienteID: &oldID},
		{LocalID: "O4", ClienteLocalID: "L2", Status: models.StatusPendingSync},
	}
	if err := store.Orders.BulkUpsert(orders); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	affected, err := store.Orders.AssignClienteID("L1", 42)
	if err != nil {
		t.Fatalf("AssignClienteID failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("expected 2 orders stamped, got %d", affected)
	}

	synced, err := store.Orders.GetByLocalID("O3")
	if err != nil {
		t.Fatalf("load O3: %v", err)
	}
	if *synced.ClienteID != 7 {
		t.Errorf("synced order must keep its cliente id, got %d", *synced.ClienteID)
	}

	other, err := store.Orders.GetByLocalID("O4")
	if err != nil {
		t.Fatalf("load O4: %v", err)
	}
	if other.ClienteID != nil {
		t.Errorf("order of another client must not be stamped, got %v", *other.ClienteID)
	}
}

func TestOrderGetUploadQueueRequiresClienteID(t *testing.T) {
	store := newTestStore(t)

	clienteID := int64(42)
	orders := []models.Order{
		{LocalID: "O1", ClienteLocalID: "L1", Status: models.StatusPendingSync},
		{LocalID: "O2", ClienteLocalID: "L2", ClienteID: &clienteID, Status: models.StatusPendingSync},
		{LocalID: "O3", ClienteLocalID: "L2", ClienteID: &clienteID, Status: models.StatusSyncFailed},
	}
	if err := store.Orders.BulkUpsert(orders); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	queue, err := store.Orders.GetUploadQueue()
	if err != nil {
		t.Fatalf("GetUploadQueue failed: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 uploadable orders, got %d", len(queue))
	}
	for _, o := range queue {
		if o.ClienteID == nil {
			t.Errorf("order %s without cliente id must not be uploadable", o.LocalID)
		}
	}
}

func TestProductReplaceAll(t *testing.T) {
	store := newTestStore(t)

	if err := store.Products.ReplaceAll([]models.Product{
		{ID: 1, Nombre: "Yerba", PrecioUnitario: 4200},
		{ID: 99, Nombre: "Descontinuado", PrecioUnitario: 10},
	}); err != nil {
		t.Fatalf("first replace failed: %v", err)
	}

	if err := store.Products.ReplaceAll([]models.Product{
		{ID: 1, Nombre: "Yerba", PrecioUnitario: 4500},
		{ID: 2, Nombre: "Azucar", PrecioUnitario: 950},
	}); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	all, err := store.Products.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected catalog to be replaced wholesale, got %d products", len(all))
	}
	if _, err := store.Products.GetByID(99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("product 99 should be gone after replacement, got err=%v", err)
	}
}

func TestPriceForPrefersNewestActiveList(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lists := []models.PriceList{
		{ID: 1, Nombre: "Vieja", Activa: true, FechaCreacion: base},
		{ID: 2, Nombre: "Nueva", Activa: true, FechaCreacion: base.AddDate(0, 1, 0)},
		{ID: 3, Nombre: "Inactiva", Activa: false, FechaCreacion: base.AddDate(0, 2, 0)},
	}
	items := []models.PriceListItem{
		{ListaID: 1, ProductoID: 10, Precio: 100},
		{ListaID: 2, ProductoID: 10, Precio: 90},
		{ListaID: 3, ProductoID: 10, Precio: 1},
		{ListaID: 1, ProductoID: 20, Precio: 500},
	}
	if err := store.PriceLists.ReplaceAll(lists, items); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	item, err := store.PriceLists.PriceFor(10)
	if err != nil {
		t.Fatalf("PriceFor failed: %v", err)
	}
	if item.Precio != 90 {
		t.Errorf("expected newest active list to win, got precio %v", item.Precio)
	}

	if _, err := store.PriceLists.PriceFor(999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for unlisted product, got %v", err)
	}
}

func TestTransactionRollsBackAllWrites(t *testing.T) {
	store := newTestStore(t)

	boom := errors.New("boom")
	err := store.Transaction(func(tx *Store) error {
		if err := tx.Clients.Upsert(&models.Client{LocalID: "L1", NombreComercio: "X", Status: models.StatusPendingSync}); err != nil {
			return err
		}
		if err := tx.Orders.Upsert(&models.Order{LocalID: "O1", ClienteLocalID: "L1", Status: models.StatusPendingSync}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transaction to surface the body error, got %v", err)
	}

	if _, err := store.Clients.GetByLocalID("L1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("client write should have rolled back, got err=%v", err)
	}
	if _, err := store.Orders.GetByLocalID("O1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("order write should have rolled back, got err=%v", err)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.Meta.Get("lastSyncTime"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Meta.Set("lastSyncTime", "2026-09-01T10:00:00Z"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Meta.Set("lastSyncTime", "2026-09-01T11:00:00Z"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, ok, err := store.Meta.Get("lastSyncTime")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if value != "2026-09-01T11:00:00Z" {
		t.Errorf("expected overwritten value, got %q", value)
	}
}

func TestDraftOnePerClient(t *testing.T) {
	store := newTestStore(t)

	if err := store.Drafts.Put(&models.Draft{
		ClienteLocalID: "L1",
		Items:          []models.DraftItem{{ProductoID: 1, Cantidad: 2}},
		Notas:          "dejar en porteria",
	}); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := store.Drafts.Put(&models.Draft{
		ClienteLocalID: "L1",
		Items:          []models.DraftItem{{ProductoID: 1, Cantidad: 5}},
	}); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	drafts, err := store.Drafts.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected one draft per client, got %d", len(drafts))
	}
	if drafts[0].Items[0].Cantidad != 5 {
		t.Errorf("expected last write to win, got cantidad %d", drafts[0].Items[0].Cantidad)
	}

	if err := store.Drafts.Delete("L1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Drafts.Get("L1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected draft gone after delete, got %v", err)
	}
}
