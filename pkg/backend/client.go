package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client is a typed wrapper over the distribution backend API. It parses
// responses and surfaces failures; retry policy lives with the caller.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RemoteError carries the server-supplied message for any non-2xx response.
// StatusCode is zero when the request never reached the server.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend request failed: %s", e.Message)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Usuario struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

type LoginResponse struct {
	User  Usuario `json:"user"`
	Token string  `json:"token"`
}

type ClientePayload struct {
	NombreComercio string `json:"nombre_comercio"`
	NombreContacto string `json:"nombre_contacto"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
}

type Cliente struct {
	ID             int64  `json:"id"`
	NombreComercio string `json:"nombre_comercio"`
	NombreContacto string `json:"nombre_contacto"`
	Direccion      string `json:"direccion"`
	Telefono       string `json:"telefono"`
}

type Producto struct {
	ID             int64   `json:"id"`
	Nombre         string  `json:"nombre"`
	SKU            string  `json:"sku"`
	PrecioUnitario float64 `json:"precio_unitario"`
	EnStock        bool    `json:"en_stock"`
	Archivado      bool    `json:"archivado"`
}

type productosResponse struct {
	Productos []Producto `json:"productos"`
}

type Lista struct {
	ID            int64     `json:"id"`
	Nombre        string    `json:"nombre"`
	Activa        bool      `json:"activa"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type ListaItem struct {
	ListaID    int64   `json:"lista_id"`
	ProductoID int64   `json:"producto_id"`
	Precio     float64 `json:"precio"`
}

type PriceListSyncData struct {
	Listas []Lista     `json:"listas"`
	Items  []ListaItem `json:"items"`
}

type PedidoItem struct {
	ProductoID      int64   `json:"producto_id"`
	Cantidad        int     `json:"cantidad"`
	PrecioCongelado float64 `json:"precio_congelado"`
	NombreCongelado string  `json:"nombre_congelado"`
	SKUCongelado    string  `json:"sku_congelado"`
}

type CreatePedidoRequest struct {
	ClienteID    int64        `json:"cliente_id"`
	Items        []PedidoItem `json:"items"`
	NotasEntrega string       `json:"notas_entrega"`
}

type CreatePedidoResponse struct {
	PedidoID int64 `json:"pedido_id"`
}

type UpdatePedidoRequest struct {
	Items        []PedidoItem `json:"items"`
	NotasEntrega string       `json:"notas_entrega"`
}

type PedidoStatus struct {
	ID     int64  `json:"id"`
	Estado string `json:"estado"`
}

type PedidoHistorico struct {
	ID             int64        `json:"id"`
	ClienteID      int64        `json:"cliente_id"`
	NombreComercio string       `json:"nombre_comercio"`
	UsuarioID      int64        `json:"usuario_id"`
	NombreVendedor string       `json:"nombre_vendedor"`
	FechaCreacion  time.Time    `json:"fecha_creacion"`
	Items          []PedidoItem `json:"items"`
	NotasEntrega   string       `json:"notas_entrega"`
	Estado         string       `json:"estado"`
}

// Login authenticates the vendor and returns the bearer token for every
// other call.
func (c *Client) Login(email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.doJSON(http.MethodPost, "/auth/login", "", LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCliente(payload ClientePayload, token string) (*Cliente, error) {
	var out Cliente
	err := c.doJSON(http.MethodPost, "/clientes", token, payload, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCliente(serverID int64, payload ClientePayload, token string) (*Cliente, error) {
	var out Cliente
	path := fmt.Sprintf("/clientes/%d", serverID)
	err := c.doJSON(http.MethodPut, path, token, payload, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetClientes(token string) ([]Cliente, error) {
	var out []Cliente
	err := c.doJSON(http.MethodGet, "/clientes", token, nil, &out)
	return out, err
}

func (c *Client) GetProductos(token string) ([]Producto, error) {
	var out productosResponse
	err := c.doJSON(http.MethodGet, "/productos?format=full", token, nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Productos, nil
}

func (c *Client) GetPriceListSyncData(token string) (*PriceListSyncData, error) {
	var out PriceListSyncData
	err := c.doJSON(http.MethodGet, "/listas-precios/sync-data", token, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePedido(req CreatePedidoRequest, token string) (*CreatePedidoResponse, error) {
	var out CreatePedidoResponse
	err := c.doJSON(http.MethodPost, "/pedidos", token, req, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePedido(serverID int64, req UpdatePedidoRequest, token string) error {
	path := fmt.Sprintf("/pedidos/%d", serverID)
	return c.doJSON(http.MethodPut, path, token, req, nil)
}

func (c *Client) GetPedidosStatus(ids []int64, token string) ([]PedidoStatus, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	path := "/pedidos/status?ids=" + strings.Join(parts, ",")
	var out []PedidoStatus
	err := c.doJSON(http.MethodGet, path, token, nil, &out)
	return out, err
}

func (c *Client) GetPedidosHistoricos(token string) ([]PedidoHistorico, error) {
	var out []PedidoHistorico
	err := c.doJSON(http.MethodGet, "/pedidos/mis-pedidos-historicos", token, nil, &out)
	return out, err
}

// Online probes the backend with a short timeout. Any HTTP response counts
// as connectivity; only transport failures report offline.
func (c *Client) Online() bool {
	probe := &http.Client{Timeout: 5 * time.Second}
	resp, err := probe.Get(c.BaseURL + "/")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (c *Client) doJSON(method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &RemoteError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func serverMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return "request rejected by backend"
}
