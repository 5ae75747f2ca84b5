package models

// Product is a server-owned catalog entry. The local copy is read-only and
// replaced wholesale on every download cycle.
type Product struct {
	ID             int64   `json:"id" gorm:"primaryKey"`
	Nombre         string  `json:"nombre"`
	SKU            string  `json:"sku"`
	PrecioUnitario float64 `json:"precio_unitario"`
	EnStock        bool    `json:"en_stock"`
	Archivado      bool    `json:"archivado" gorm:"index"`
}
