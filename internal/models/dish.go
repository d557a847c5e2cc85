package models

import "time"

// Dish represents a dish in the catalog. Name is unique across the whole
// table; the database enforces it at write time.
type Dish struct {
	ID          int          `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Description *string      `json:"description" gorm:"type:text"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Collections []Collection `json:"-" gorm:"many2many:collection_dish;constraint:OnDelete:CASCADE"`
}
