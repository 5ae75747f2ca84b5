package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"distrisync/internal/models"
	"distrisync/internal/services"
	"distrisync/pkg/backend"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type APIHandler struct {
	sessionService services.SessionService
	syncService    services.SyncService
	clientService  services.ClientService
	orderService   services.OrderService
	cartService    services.CartService
	catalogService services.CatalogService
}

func NewAPIHandler(
	sessionService services.SessionService,
	syncService services.SyncService,
	clientService services.ClientService,
	orderService services.OrderService,
	cartService services.CartService,
	catalogService services.CatalogService,
) *APIHandler {
	return &APIHandler{
		sessionService: sessionService,
		syncService:    syncService,
		clientService:  clientService,
		orderService:   orderService,
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// Auth endpoints

func (h *APIHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.sessionService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  gin.H{"id": session.UserID, "nombre": session.Nombre, "email": session.Email},
		"token": session.Token,
	})
}

func (h *APIHandler) OfflineLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	session, err := h.sessionService.OfflineLogin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    gin.H{"id": session.UserID, "nombre": session.Nombre, "email": session.Email},
		"offline": true,
	})
}

func (h *APIHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Sync endpoints

func (h *APIHandler) RunSync(c *gin.Context) {
	summary, err := h.syncService.RunSync()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *APIHandler) ImportHistory(c *gin.Context) {
	count, err := h.syncService.ImportHistory()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (h *APIHandler) SyncStatus(c *gin.Context) {
	lastSync, ok, err := h.syncService.LastSyncTime()
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"syncing": h.syncService.Syncing()}
	if ok {
		resp["last_sync"] = lastSync
	}
	if summary, ok := h.syncService.LastSummary(); ok {
		resp["last_summary"] = summary
	}
	c.JSON(http.StatusOK, resp)
}

// Client endpoints

func (h *APIHandler) ListClients(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		clients, err := h.clientService.ListByStatus(models.SyncStatus(status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, clients)
		return
	}
	clients, err := h.clientService.ListClients()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *APIHandler) CreateClient(c *gin.Context) {
	var input services.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	client, err := h.clientService.CreateClient(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *APIHandler) UpdateClient(c *gin.Context) {
	var input services.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	client, err := h.clientService.UpdateClient(c.Param("local_id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// Order endpoints

func (h *APIHandler) ListOrders(c *gin.Context) {
	if clienteLocalID := c.Query("cliente_local_id"); clienteLocalID != "" {
		orders, err := h.orderService.ListByCliente(clienteLocalID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}
	if status := c.Query("status"); status != "" {
		orders, err := h.orderService.ListByStatus(models.SyncStatus(status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}
	orders, err := h.orderService.ListOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("local_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "total": order.Total()})
}

func (h *APIHandler) LoadOrderForEdit(c *gin.Context) {
	cart, notas, err := h.cartService.LoadForEdit(c.Param("local_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "notas": notas})
}

func (h *APIHandler) SaveOrder(c *gin.Context) {
	var req struct {
		ClienteLocalID string `json:"cliente_local_id"`
		PedidoLocalID  string `json:"pedido_local_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.cartService.Save(req.ClienteLocalID, req.PedidoLocalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Catalog endpoints

func (h *APIHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *APIHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *APIHandler) ListPriceLists(c *gin.Context) {
	lists, err := h.catalogService.ListPriceLists()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// Cart endpoints

func (h *APIHandler) GetCart(c *gin.Context) {
	draft, err := h.cartService.GetDraft(c.Param("cliente_local_id"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"items": []models.DraftItem{}, "notas": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": draft.Items, "notas": draft.Notas})
}

func (h *APIHandler) UpdateCart(c *gin.Context) {
	var req struct {
		Items []models.DraftItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.cartService.UpdateCart(c.Param("cliente_local_id"), req.Items); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *APIHandler) UpdateCartNotes(c *gin.Context) {
	var req struct {
		Notas string `json:"notas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.cartService.UpdateNotes(c.Param("cliente_local_id"), req.Notas); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *APIHandler) DiscardCart(c *gin.Context) {
	if err := h.cartService.Discard(c.Param("cliente_local_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "discarded"})
}

func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var remoteErr *backend.RemoteError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, services.ErrNotAuthenticated), errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOrderLocked), errors.Is(err, services.ErrSyncInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrOffline):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &remoteErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": remoteErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
