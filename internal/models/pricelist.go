package models

import "time"

// PriceList and PriceListItem mirror the backend's price-list sync payload.
// Identifiers are server-authoritative and globally unique, so both tables
// are cleared and re-inserted on each download.
type PriceList struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Nombre        string    `json:"nombre"`
	Activa        bool      `json:"activa" gorm:"index"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

type PriceListItem struct {
	ID         uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	ListaID    int64   `json:"lista_id" gorm:"index:idx_lista_producto,unique"`
	ProductoID int64   `json:"producto_id" gorm:"index:idx_lista_producto,unique"`
	Precio     float64 `json:"precio"`
}
