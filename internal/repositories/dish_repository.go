package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/what2eat/what2eat-api/internal/models"
	"github.com/what2eat/what2eat-api/internal/schemas"
	"gorm.io/gorm"
)

// allowedOrderByFields whitelists ORDER BY columns. Query params are
// validated upstream by the transfer schema; this map keeps raw column
// names out of the SQL regardless.
var allowedOrderByFields = map[string]bool{
	"id":         true,
	"name":       true,
	"created_at": true,
}

// DishRepository is the only component permitted to issue dish queries.
// It never translates persistence errors into domain errors; unique
// violations propagate to the service untouched.
type DishRepository interface {
	// Create inserts a new dish from validated input
	Create(ctx context.Context, data schemas.DishCreate) (*models.Dish, error)
	// GetByID returns the dish, or (nil, nil) when no row matches
	GetByID(ctx context.Context, id int) (*models.Dish, error)
	// GetAll returns a filtered, ordered page of dishes
	GetAll(ctx context.Context, params schemas.DishQueryParams) ([]models.Dish, error)
	// Update applies only the fields present in data; (nil, nil) when absent
	Update(ctx context.Context, id int, data schemas.DishUpdate) (*models.Dish, error)
	// Delete removes the dish and its collection links; false when absent
	Delete(ctx context.Context, id int) (bool, error)
}

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a gorm-backed DishRepository
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Create(ctx context.Context, data schemas.DishCreate) (*models.Dish, error) {
	dish := models.Dish{
		Name:        data.Name,
		Description: data.Description,
	}
	if err := r.db.WithContext(ctx).Create(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) GetByID(ctx context.Context, id int) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.WithContext(ctx).First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dish, nil
}

// GetAll filters by a case-insensitive substring match on name. Results
// are ordered by the requested column and direction; limit and offset
// window the result set.
func (r *dishRepository) GetAll(ctx context.Context, params schemas.DishQueryParams) ([]models.Dish, error) {
	query := r.db.WithContext(ctx).Model(&models.Dish{})

	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	orderBy := params.OrderBy
	if !allowedOrderByFields[orderBy] {
		orderBy = "id"
	}
	direction := "ASC"
	if strings.EqualFold(params.Direction, "desc") {
		direction = "DESC"
	}

	var dishes []models.Dish
	err := query.
		Order(fmt.Sprintf("%s %s", orderBy, direction)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&dishes).Error
	if err != nil {
		return nil, err
	}
	return dishes, nil
}

func (r *dishRepository) Update(ctx context.Context, id int, data schemas.DishUpdate) (*models.Dish, error) {
	var updated models.Dish

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if data.Name.Present && !data.Name.Null {
			updates["name"] = data.Name.Value
		}
		if data.Description.Present {
			if data.Description.Null {
				updates["description"] = nil
			} else {
				updates["description"] = data.Description.Value
			}
		}

		// An empty patch is a no-op that still returns the current state.
		if len(updates) > 0 {
			if err := tx.Model(&dish).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *dishRepository) Delete(ctx context.Context, id int) (bool, error) {
	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Clear join rows first so no dangling links outlive the dish.
		if err := tx.Where("dish_id = ?", id).Delete(&models.CollectionDishLink{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Dish{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
