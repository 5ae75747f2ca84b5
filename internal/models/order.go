package models

import "time"

// OrderItem is a line item with the product attributes frozen at save time.
// Later catalog or price-list changes must not alter a saved order.
type OrderItem struct {
	ProductoID      int64   `json:"producto_id"`
	Cantidad        int     `json:"cantidad"`
	PrecioCongelado float64 `json:"precio_congelado"`
	NombreCongelado string  `json:"nombre_congelado"`
	SKUCongelado    string  `json:"sku_congelado"`
}

type Order struct {
	LocalID        string      `json:"local_id" gorm:"primaryKey"`
	ServerID       *int64      `json:"id,omitempty" gorm:"column:server_id;index"`
	ClienteID      *int64      `json:"cliente_id,omitempty" gorm:"index"`
	ClienteLocalID string      `json:"cliente_local_id" gorm:"index"`
	ClienteNombre  string      `json:"cliente_nombre_snapshot"`
	UsuarioID      string      `json:"usuario_id"`
	Fecha          time.Time   `json:"fecha"`
	Items          []OrderItem `json:"items" gorm:"serializer:json"`
	NotasEntrega   string      `json:"notas_entrega"`
	Estado         OrderEstado `json:"estado" gorm:"index;default:'pendiente'"`
	Status         SyncStatus  `json:"status" gorm:"index"`
	Retries        int         `json:"retries"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Editable reports whether the vendor may still change the order. Once staff
// move the workflow past "pendiente" the order is locked on this side.
func (o *Order) Editable() bool {
	return o.Estado == "" || o.Estado == EstadoPendiente
}

func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.PrecioCongelado * float64(item.Cantidad)
	}
	return total
}
