package models

import "time"

// Client is a commerce the vendor sells to. LocalID is assigned on creation
// and is the primary key for the record's whole lifetime; ServerID arrives
// once the first successful upload assigns one and is never changed after.
type Client struct {
	LocalID        string     `json:"local_id" gorm:"primaryKey"`
	ServerID       *int64     `json:"id,omitempty" gorm:"column:server_id;index"`
	NombreComercio string     `json:"nombre_comercio" gorm:"not null"`
	NombreContacto string     `json:"nombre_contacto"`
	Direccion      string     `json:"direccion"`
	Telefono       string     `json:"telefono"`
	Status         SyncStatus `json:"status" gorm:"index;default:'pending_sync'"`
	Retries        int        `json:"retries"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
