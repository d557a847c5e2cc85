package schemas

import (
	"time"

	"github.com/what2eat/what2eat-api/internal/models"
)

// DishCreate is the request body for creating a dish
type DishCreate struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

// DishUpdate is the PATCH body. Every field is optional: an absent field
// leaves the stored value untouched, an explicit null clears it. Name is
// NOT NULL in the database, so null name is rejected by Validate.
type DishUpdate struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// Validate enforces the rules that binding tags cannot express on
// presence-aware fields. Returns a field->message map, or nil when valid.
func (u *DishUpdate) Validate() map[string]string {
	details := map[string]string{}
	if u.Name.Present {
		switch {
		case u.Name.Null:
			details["name"] = "must not be null"
		case u.Name.Value == "":
			details["name"] = "must not be empty"
		case len(u.Name.Value) > 255:
			details["name"] = "must be at most 255 characters"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// DishPublic is the read representation returned by the API. It never
// exposes fields beyond identity, name, description and creation time.
type DishPublic struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDishPublic maps a persisted entity to its public representation
func NewDishPublic(dish *models.Dish) DishPublic {
	return DishPublic{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		CreatedAt:   dish.CreatedAt,
	}
}

// DishQueryParams holds the list-endpoint query string. Enum and range
// validation happens here, at binding time, before any service or
// repository call sees the values.
type DishQueryParams struct {
	Search    string `form:"search"`
	OrderBy   string `form:"order_by,default=id" binding:"oneof=id name created_at"`
	Direction string `form:"direction,default=asc" binding:"oneof=asc desc"`
	Limit     int    `form:"limit,default=10" binding:"min=1,max=500"`
	Offset    int    `form:"offset" binding:"min=0"`
}
