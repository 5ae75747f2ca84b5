package services

import (
	"errors"
	"log"
	"time"

	"distrisync/internal/models"
	"distrisync/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is a draft line joined against the live catalog, for display
// while the vendor is still editing.
type CartItem struct {
	Producto models.Product `json:"producto"`
	Cantidad int            `json:"cantidad"`
}

// CartService tracks the in-progress order per client. Every edit is written
// through to the draft store immediately so a reload loses nothing.
type CartService interface {
	UpdateCart(clienteLocalID string, items []models.DraftItem) error
	UpdateNotes(clienteLocalID, notas string) error
	GetDraft(clienteLocalID string) (*models.Draft, error)
	Discard(clienteLocalID string) error
	// LoadForEdit rebuilds the cart from an existing order's line items and
	// stores it as the client's active draft. Items whose product no longer
	// resolves are silently dropped.
	LoadForEdit(orderLocalID string) ([]CartItem, string, error)
	// Save turns the client's draft into a persisted order. Pass the order's
	// local id when editing an existing order, or empty for a new one.
	Save(clienteLocalID, orderLocalID string) (*models.Order, error)
}

type cartService struct {
	store     *repository.Store
	scheduler *SyncScheduler
}

func NewCartService(store *repository.Store, scheduler *SyncScheduler) CartService {
	return &cartService{store: store, scheduler: scheduler}
}

func (s *cartService) UpdateCart(clienteLocalID string, items []models.DraftItem) error {
	if clienteLocalID == "" {
		return newValidationError("cliente_local_id is required")
	}
	notas := ""
	if draft, err := s.store.Drafts.Get(clienteLocalID); err == nil {
		notas = draft.Notas
	}
	return s.store.Drafts.Put(&models.Draft{
		ClienteLocalID: clienteLocalID,
		Items:          items,
		Notas:          notas,
	})
}

func (s *cartService) UpdateNotes(clienteLocalID, notas string) error {
	if clienteLocalID == "" {
		return newValidationError("cliente_local_id is required")
	}
	var items []models.DraftItem
	if draft, err := s.store.Drafts.Get(clienteLocalID); err == nil {
		items = draft.Items
	}
	return s.store.Drafts.Put(&models.Draft{
		ClienteLocalID: clienteLocalID,
		Items:          items,
		Notas:          notas,
	})
}

func (s *cartService) GetDraft(clienteLocalID string) (*models.Draft, error) {
	return s.store.Drafts.Get(clienteLocalID)
}

func (s *cartService) Discard(clienteLocalID string) error {
	return s.store.Drafts.Delete(clienteLocalID)
}

func (s *cartService) LoadForEdit(orderLocalID string) ([]CartItem, string, error) {
	order, err := s.store.Orders.GetByLocalID(orderLocalID)
	if err != nil {
		return nil, "", err
	}
	if !order.Editable() {
		return nil, "", ErrOrderLocked
	}

	cart := make([]CartItem, 0, len(order.Items))
	draftItems := make([]models.DraftItem, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := s.store.Products.GetByID(item.ProductoID)
		if err != nil || product.Archivado {
			// product gone from the catalog, drop the line
			continue
		}
		cart = append(cart, CartItem{Producto: *product, Cantidad: item.Cantidad})
		draftItems = append(draftItems, models.DraftItem{ProductoID: item.ProductoID, Cantidad: item.Cantidad})
	}

	draft := &models.Draft{
		ClienteLocalID: order.ClienteLocalID,
		Items:          draftItems,
		Notas:          order.NotasEntrega,
	}
	if err := s.store.Drafts.Put(draft); err != nil {
		return nil, "", err
	}
	return cart, order.NotasEntrega, nil
}

func (s *cartService) Save(clienteLocalID, orderLocalID string) (*models.Order, error) {
	client, err := s.store.Clients.GetByLocalID(clienteLocalID)
	if err != nil {
		return nil, newValidationError("unknown client")
	}

	draft, err := s.store.Drafts.Get(clienteLocalID)
	if err != nil || len(draft.Items) == 0 {
		return nil, newValidationError("cart is empty")
	}

	items, err := s.freezeItems(draft.Items)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	if orderLocalID != "" {
		order, err = s.store.Orders.GetByLocalID(orderLocalID)
		if err != nil {
			return nil, err
		}
		if !order.Editable() {
			return nil, ErrOrderLocked
		}
		order.Items = items
		order.NotasEntrega = draft.Notas
		order.Status = models.StatusPendingSync
		order.Retries = 0
	} else {
		order = &models.Order{
			LocalID:        uuid.NewString(),
			ClienteLocalID: client.LocalID,
			ClienteNombre:  client.NombreComercio,
			Fecha:          time.Now().UTC(),
			Items:          items,
			NotasEntrega:   draft.Notas,
			Estado:         models.EstadoPendiente,
			Status:         models.StatusPendingSync,
		}
		if client.ServerID != nil {
			clienteID := *client.ServerID
			order.ClienteID = &clienteID
		}
	}

	if err := s.store.Orders.Upsert(order); err != nil {
		return nil, err
	}
	if err := s.store.Drafts.Delete(clienteLocalID); err != nil {
		log.Printf("Warning: failed to clear draft for client %s: %v", clienteLocalID, err)
	}

	// Saving only marks the order pending; the actual network attempt is one
	// immediate best-effort pass through the orchestrator.
	if s.scheduler != nil {
		s.scheduler.Kick()
	}
	return order, nil
}

// freezeItems snapshots price, name and sku per line at save time. An active
// price list overrides the catalog price when it carries the product.
func (s *cartService) freezeItems(draftItems []models.DraftItem) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(draftItems))
	for _, di := range draftItems {
		if di.Cantidad <= 0 {
			return nil, newValidationError("item quantity must be positive")
		}
		product, err := s.store.Products.GetByID(di.ProductoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, newValidationError("unknown product in cart")
			}
			return nil, err
		}

		precio := product.PrecioUnitario
		if override, err := s.store.PriceLists.PriceFor(product.ID); err == nil {
			precio = override.Precio
		}

		items = append(items, models.OrderItem{
			ProductoID:      product.ID,
			Cantidad:        di.Cantidad,
			PrecioCongelado: precio,
			NombreCongelado: product.Nombre,
			SKUCongelado:    product.SKU,
		})
	}
	return items, nil
}
