package models

import "time"

// Collection groups dishes under a name (e.g. "weeknight favorites").
// The relationship to Dish is many-to-many and navigable from both sides.
type Collection struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Dishes    []Dish    `json:"-" gorm:"many2many:collection_dish;constraint:OnDelete:CASCADE"`
}

// CollectionDishLink is the join table between collections and dishes.
// The two foreign keys together form the primary key, so a given
// (collection, dish) pair can appear at most once. It carries no other
// attributes. Registered via SetupJoinTable at startup.
type CollectionDishLink struct {
	CollectionID int `gorm:"primaryKey"`
	DishID       int `gorm:"primaryKey"`
}

// TableName overrides the default gorm naming for the join table.
func (CollectionDishLink) TableName() string {
	return "collection_dish"
}
