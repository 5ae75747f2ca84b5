package services

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"distrisync/internal/models"
	"distrisync/internal/redis"
	"distrisync/internal/repository"
	"distrisync/pkg/backend"

	"github.com/google/uuid"
)

const (
	metaLastSyncKey     = "lastSyncTime"
	lastSummaryKey      = "last_sync_summary"
	lastSummaryCacheTTL = 24 * time.Hour
)

// TokenSource supplies the bearer token of the active session.
type TokenSource interface {
	Token() (string, error)
}

type EntityCounts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type SyncSummary struct {
	Clientes        EntityCounts `json:"clientes"`
	Pedidos         EntityCounts `json:"pedidos"`
	Downloaded      bool         `json:"downloaded"`
	StatusesUpdated int          `json:"statuses_updated"`
}

// SyncService drives one full synchronization pass: download master data,
// reconcile order workflow statuses, then upload pending clients and orders.
type SyncService interface {
	RunSync() (*SyncSummary, error)
	ImportHistory() (int, error)
	LastSyncTime() (time.Time, bool, error)
	LastSummary() (*SyncSummary, bool)
	Syncing() bool
}

type syncService struct {
	store      *repository.Store
	api        *backend.Client
	tokens     TokenSource
	reconciler ReconcileService
	cache      *redis.Client
	running    int32
}

func NewSyncService(store *repository.Store, api *backend.Client, tokens TokenSource, reconciler ReconcileService, cache *redis.Client) SyncService {
	return &syncService{
		store:      store,
		api:        api,
		tokens:     tokens,
		reconciler: reconciler,
		cache:      cache,
	}
}

// RunSync executes one pass. A pass already in flight refuses a second one,
// and the guard rejects offline or unauthenticated runs before any side
// effect. Per-entity upload failures are absorbed into the summary; only
// guard and download failures abort the pass.
func (s *syncService) RunSync() (*SyncSummary, error) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return nil, ErrSyncInProgress
	}
	defer atomic.StoreInt32(&s.running, 0)

	token, err := s.tokens.Token()
	if err != nil || token == "" {
		return nil, ErrNotAuthenticated
	}
	if !s.api.Online() {
		return nil, ErrOffline
	}

	summary := &SyncSummary{}

	if err := s.downloadMasterData(token); err != nil {
		return nil, fmt.Errorf("download master data: %w", err)
	}
	summary.Downloaded = true

	updated, err := s.reconcileOrderStatuses(token)
	if err != nil {
		return nil, fmt.Errorf("reconcile order statuses: %w", err)
	}
	summary.StatusesUpdated = updated

	summary.Clientes = s.uploadClients(token)
	summary.Pedidos = s.uploadOrders(token)

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.store.Meta.Set(metaLastSyncKey, now); err != nil {
		log.Printf("Warning: failed to record last sync time: %v", err)
	}
	if s.cache != nil {
		if err := s.cache.SetTempData(lastSummaryKey, summary, lastSummaryCacheTTL); err != nil {
			log.Printf("Warning: failed to cache sync summary: %v", err)
		}
	}
	return summary, nil
}

func (s *syncService) Syncing() bool {
	return atomic.LoadInt32(&s.running) == 1
}

// LastSummary returns the cached result of the most recent pass, if the
// cache still holds one.
func (s *syncService) LastSummary() (*SyncSummary, bool) {
	if s.cache == nil {
		return nil, false
	}
	var summary SyncSummary
	if err := s.cache.GetTempData(lastSummaryKey, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (s *syncService) LastSyncTime() (time.Time, bool, error) {
	value, ok, err := s.store.Meta.Get(metaLastSyncKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last sync time: %w", err)
	}
	return t, true, nil
}

// downloadMasterData replaces the product and price-list tables wholesale
// and merges the authoritative client list. A local client still waiting to
// upload wins over the server copy so unsynced edits are never clobbered.
func (s *syncService) downloadMasterData(token string) error {
	serverClientes, err := s.api.GetClientes(token)
	if err != nil {
		return err
	}
	productos, err := s.api.GetProductos(token)
	if err != nil {
		return err
	}
	priceData, err := s.api.GetPriceListSyncData(token)
	if err != nil {
		return err
	}

	return s.store.Transaction(func(tx *repository.Store) error {
		// Dedupe by id, keeping the last occurrence the server sent.
		seen := make(map[int64]int)
		products := make([]models.Product, 0, len(productos))
		for _, p := range productos {
			prod := models.Product{
				ID:             p.ID,
				Nombre:         p.Nombre,
				SKU:            p.SKU,
				PrecioUnitario: p.PrecioUnitario,
				EnStock:        p.EnStock,
				Archivado:      p.Archivado,
			}
			if idx, ok := seen[p.ID]; ok {
				products[idx] = prod
				continue
			}
			seen[p.ID] = len(products)
			products = append(products, prod)
		}
		if err := tx.Products.ReplaceAll(products); err != nil {
			return err
		}

		lists := make([]models.PriceList, 0, len(priceData.Listas))
		for _, l := range priceData.Listas {
			lists = append(lists, models.PriceList{
				ID:            l.ID,
				Nombre:        l.Nombre,
				Activa:        l.Activa,
				FechaCreacion: l.FechaCreacion,
			})
		}
		items := make([]models.PriceListItem, 0, len(priceData.Items))
		for _, it := range priceData.Items {
			items = append(items, models.PriceListItem{
				ListaID:    it.ListaID,
				ProductoID: it.ProductoID,
				Precio:     it.Precio,
			})
		}
		if err := tx.PriceLists.ReplaceAll(lists, items); err != nil {
			return err
		}

		locals, err := tx.Clients.GetAll()
		if err != nil {
			return err
		}
		byServerID := make(map[int64]models.Client, len(locals))
		for _, local := range locals {
			if local.ServerID != nil {
				byServerID[*local.ServerID] = local
			}
		}

		var toSave []models.Client
		for _, srv := range serverClientes {
			if local, ok := byServerID[srv.ID]; ok {
				// Local edits waiting for upload win over the server copy.
				if local.Status != models.StatusSynced {
					continue
				}
				local.NombreComercio = srv.NombreComercio
				local.NombreContacto = srv.NombreContacto
				local.Direccion = srv.Direccion
				local.Telefono = srv.Telefono
				local.Status = models.StatusSynced
				toSave = append(toSave, local)
			} else {
				serverID := srv.ID
				toSave = append(toSave, models.Client{
					LocalID:        uuid.NewString(),
					ServerID:       &serverID,
					NombreComercio: srv.NombreComercio,
					NombreContacto: srv.NombreContacto,
					Direccion:      srv.Direccion,
					Telefono:       srv.Telefono,
					Status:         models.StatusSynced,
				})
			}
		}
		return tx.Clients.BulkUpsert(toSave)
	})
}

// reconcileOrderStatuses pulls the current workflow status for every synced
// order that has a server id. Only the estado field is touched; items and
// notes stay untouched even if staff edited them server-side.
func (s *syncService) reconcileOrderStatuses(token string) (int, error) {
	orders, err := s.store.Orders.GetSyncedWithServerID()
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, *o.ServerID)
	}
	statuses, err := s.api.GetPedidosStatus(ids, token)
	if err != nil {
		return 0, err
	}

	byID := make(map[int64]string, len(statuses))
	for _, st := range statuses {
		byID[st.ID] = st.Estado
	}

	updated := 0
	for _, o := range orders {
		estado, ok := byID[*o.ServerID]
		if !ok || estado == string(o.Estado) {
			continue
		}
		if err := s.store.Orders.UpdateEstado(o.LocalID, models.OrderEstado(estado)); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// uploadClients pushes every pending client, creating or updating depending
// on whether a server id exists. One client's failure never blocks the rest.
func (s *syncService) uploadClients(token string) EntityCounts {
	var counts EntityCounts

	pending, err := s.store.Clients.GetUploadQueue()
	if err != nil {
		log.Printf("Failed to list pending clients: %v", err)
		return counts
	}

	for _, client := range pending {
		payload := backend.ClientePayload{
			NombreComercio: client.NombreComercio,
			NombreContacto: client.NombreContacto,
			Direccion:      client.Direccion,
			Telefono:       client.Telefono,
		}

		if client.ServerID != nil {
			_, err := s.api.UpdateCliente(*client.ServerID, payload, token)
			if err == nil {
				err = s.reconciler.ReconcileClientUpdate(client.LocalID)
			}
			if err != nil {
				s.markClientFailed(client, err)
				counts.Failed++
				continue
			}
			counts.Updated++
		} else {
			created, err := s.api.CreateCliente(payload, token)
			if err == nil {
				err = s.reconciler.ReconcileClientCreation(client.LocalID, created.ID)
			}
			if err != nil {
				s.markClientFailed(client, err)
				counts.Failed++
				continue
			}
			counts.Created++
		}
	}
	return counts
}

func (s *syncService) markClientFailed(client models.Client, cause error) {
	log.Printf("Failed to sync client %s: %v", client.LocalID, cause)
	client.Status = models.StatusSyncFailed
	client.Retries++
	if err := s.store.Clients.Upsert(&client); err != nil {
		log.Printf("Failed to mark client %s as failed: %v", client.LocalID, err)
	}
}

// uploadOrders pushes every pending order whose parent client already
// resolved a server id. Orders still waiting on their client are skipped
// until a later pass.
func (s *syncService) uploadOrders(token string) EntityCounts {
	var counts EntityCounts

	ready, err := s.store.Orders.GetUploadQueue()
	if err != nil {
		log.Printf("Failed to list pending orders: %v", err)
		return counts
	}

	for _, order := range ready {
		items := toPedidoItems(order.Items)

		if order.ServerID != nil {
			err := s.api.UpdatePedido(*order.ServerID, backend.UpdatePedidoRequest{
				Items:        items,
				NotasEntrega: order.NotasEntrega,
			}, token)
			if err != nil {
				s.markOrderFailed(order, err)
				counts.Failed++
				continue
			}
			order.Status = models.StatusSynced
			order.Retries = 0
			if err := s.store.Orders.Upsert(&order); err != nil {
				log.Printf("Failed to mark order %s as synced: %v", order.LocalID, err)
			}
			counts.Updated++
		} else {
			resp, err := s.api.CreatePedido(backend.CreatePedidoRequest{
				ClienteID:    *order.ClienteID,
				Items:        items,
				NotasEntrega: order.NotasEntrega,
			}, token)
			if err != nil {
				s.markOrderFailed(order, err)
				counts.Failed++
				continue
			}
			serverID := resp.PedidoID
			order.ServerID = &serverID
			order.Status = models.StatusSynced
			order.Retries = 0
			if err := s.store.Orders.Upsert(&order); err != nil {
				log.Printf("Failed to mark order %s as synced: %v", order.LocalID, err)
			}
			counts.Created++
		}
	}
	return counts
}

func (s *syncService) markOrderFailed(order models.Order, cause error) {
	log.Printf("Failed to sync order %s: %v", order.LocalID, cause)
	order.Status = models.StatusSyncFailed
	order.Retries++
	if err := s.store.Orders.Upsert(&order); err != nil {
		log.Printf("Failed to mark order %s as failed: %v", order.LocalID, err)
	}
}

// ImportHistory bulk-imports the vendor's historical orders from the server
// as already-synced local records. Client references are resolved to real
// local ids when the client is known locally.
func (s *syncService) ImportHistory() (int, error) {
	token, err := s.tokens.Token()
	if err != nil || token == "" {
		return 0, ErrNotAuthenticated
	}

	historicos, err := s.api.GetPedidosHistoricos(token)
	if err != nil {
		return 0, err
	}
	if len(historicos) == 0 {
		return 0, nil
	}

	locals, err := s.store.Clients.GetAll()
	if err != nil {
		return 0, err
	}
	localIDByServer := make(map[int64]string, len(locals))
	for _, c := range locals {
		if c.ServerID != nil {
			localIDByServer[*c.ServerID] = c.LocalID
		}
	}

	records := make([]models.Order, 0, len(historicos))
	for _, p := range historicos {
		serverID := p.ID
		clienteID := p.ClienteID
		clienteLocalID, ok := localIDByServer[p.ClienteID]
		if !ok {
			clienteLocalID = fmt.Sprintf("server_cliente_%d", p.ClienteID)
		}
		records = append(records, models.Order{
			LocalID:        fmt.Sprintf("server_%d", p.ID),
			ServerID:       &serverID,
			ClienteID:      &clienteID,
			ClienteLocalID: clienteLocalID,
			ClienteNombre:  p.NombreComercio,
			UsuarioID:      fmt.Sprintf("%d", p.UsuarioID),
			Fecha:          p.FechaCreacion,
			Items:          toOrderItems(p.Items),
			NotasEntrega:   p.NotasEntrega,
			Estado:         models.OrderEstado(p.Estado),
			Status:         models.StatusSynced,
		})
	}
	if err := s.store.Orders.BulkUpsert(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func toPedidoItems(items []models.OrderItem) []backend.PedidoItem {
	out := make([]backend.PedidoItem, 0, len(items))
	for _, it := range items {
		out = append(out, backend.PedidoItem{
			ProductoID:      it.ProductoID,
			Cantidad:        it.Cantidad,
			PrecioCongelado: it.PrecioCongelado,
			NombreCongelado: it.NombreCongelado,
			SKUCongelado:    it.SKUCongelado,
		})
	}
	return out
}

func toOrderItems(items []backend.PedidoItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ProductoID:      it.ProductoID,
			Cantidad:        it.Cantidad,
			PrecioCongelado: it.PrecioCongelado,
			NombreCongelado: it.NombreCongelado,
			SKUCongelado:    it.SKUCongelado,
		})
	}
	return out
}
