package models

import "time"

type DraftItem struct {
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

// Draft is the in-progress cart for one client. At most one draft exists per
// client; every edit overwrites it and a saved or discarded order deletes it.
type Draft struct {
	ClienteLocalID string      `json:"cliente_local_id" gorm:"primaryKey"`
	Items          []DraftItem `json:"items" gorm:"serializer:json"`
	Notas          string      `json:"notas"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
