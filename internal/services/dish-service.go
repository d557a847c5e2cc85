package services

import (
	"context"
	"fmt"

	"github.com/what2eat/what2eat-api/internal/models"
	"github.com/what2eat/what2eat-api/internal/repositories"
	"github.com/what2eat/what2eat-api/internal/schemas"
)

// DishService orchestrates repository calls and maps entities to their
// public representations. It is the single place where persistence-level
// constraint violations become domain errors; neither the repository nor
// the controllers perform that translation.
type DishService interface {
	// CreateDish creates a new dish from validated input
	CreateDish(ctx context.Context, input schemas.DishCreate) (schemas.DishPublic, error)
	// GetDishByID retrieves a dish by its ID
	GetDishByID(ctx context.Context, id int) (schemas.DishPublic, error)
	// ListDishes retrieves dishes matching the query filters
	ListDishes(ctx context.Context, params schemas.DishQueryParams) ([]schemas.DishPublic, error)
	// UpdateDish applies a partial update to an existing dish
	UpdateDish(ctx context.Context, id int, input schemas.DishUpdate) (schemas.DishPublic, error)
	// DeleteDish removes a dish by its ID
	DeleteDish(ctx context.Context, id int) error
}

type dishService struct {
	repository repositories.DishRepository
}

// NewDishService creates a new instance of DishService
func NewDishService(repository repositories.DishRepository) DishService {
	return &dishService{repository: repository}
}

func (s *dishService) CreateDish(ctx context.Context, input schemas.DishCreate) (schemas.DishPublic, error) {
	dish, err := s.repository.Create(ctx, input)
	if err != nil {
		if models.IsUniqueViolation(err) {
			return schemas.DishPublic{}, models.NewAlreadyExistsError(
				fmt.Sprintf("Dish with name '%s' already exists", input.Name))
		}
		return schemas.DishPublic{}, err
	}
	return schemas.NewDishPublic(dish), nil
}

func (s *dishService) GetDishByID(ctx context.Context, id int) (schemas.DishPublic, error) {
	dish, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return schemas.DishPublic{}, err
	}
	if dish == nil {
		return schemas.DishPublic{}, models.NewNotFoundError(
			fmt.Sprintf("Dish with id %d not found", id))
	}
	return schemas.NewDishPublic(dish), nil
}

// ListDishes preserves the repository's ordering; it never re-sorts.
func (s *dishService) ListDishes(ctx context.Context, params schemas.DishQueryParams) ([]schemas.DishPublic, error) {
	dishes, err := s.repository.GetAll(ctx, params)
	if err != nil {
		return nil, err
	}
	result := make([]schemas.DishPublic, 0, len(dishes))
	for i := range dishes {
		result = append(result, schemas.NewDishPublic(&dishes[i]))
	}
	return result, nil
}

func (s *dishService) UpdateDish(ctx context.Context, id int, input schemas.DishUpdate) (schemas.DishPublic, error) {
	dish, err := s.repository.Update(ctx, id, input)
	if err != nil {
		if models.IsUniqueViolation(err) {
			return schemas.DishPublic{}, models.NewAlreadyExistsError(
				"Dish with this name already exists")
		}
		return schemas.DishPublic{}, err
	}
	if dish == nil {
		return schemas.DishPublic{}, models.NewNotFoundError(
			fmt.Sprintf("Dish with id %d not found", id))
	}
	return schemas.NewDishPublic(dish), nil
}

func (s *dishService) DeleteDish(ctx context.Context, id int) error {
	deleted, err := s.repository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError(fmt.Sprintf("Dish with id %d not found", id))
	}
	return nil
}
