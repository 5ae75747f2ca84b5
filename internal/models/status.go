package models

// SyncStatus tracks whether a locally stored record has been pushed to the
// backend yet. It is owned by this app, never by the server.
type SyncStatus string

const (
	StatusPendingSync SyncStatus = "pending_sync"
	StatusSynced      SyncStatus = "synced"
	StatusSyncFailed  SyncStatus = "sync_failed"
)

// OrderEstado is the server-owned workflow stage of an order. The backend
// moves it forward as staff process the order; the app only mirrors it.
type OrderEstado string

const (
	EstadoPendiente  OrderEstado = "pendiente"
	EstadoVisto      OrderEstado = "visto"
	EstadoPreparando OrderEstado = "preparando"
	EstadoListo      OrderEstado = "listo"
	EstadoEntregado  OrderEstado = "entregado"
	EstadoCancelado  OrderEstado = "cancelado"
)

var validEstados = map[OrderEstado]bool{
	EstadoPendiente:  true,
	EstadoVisto:      true,
	EstadoPreparando: true,
	EstadoListo:      true,
	EstadoEntregado:  true,
	EstadoCancelado:  true,
}

func (e OrderEstado) Valid() bool {
	return validEstados[e]
}
