package models

// Meta holds scalar key/value state such as the last sync timestamp.
type Meta struct {
	Key   string `json:"key" gorm:"primaryKey"`
	Value string `json:"value"`
}
