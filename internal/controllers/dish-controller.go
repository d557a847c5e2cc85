package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/what2eat/what2eat-api/internal/schemas"
	"github.com/what2eat/what2eat-api/internal/services"
)

// DishController handles HTTP requests related to dishes. Handlers bind
// and validate input, invoke exactly one service operation and push any
// error to the gin error list for the global error handler to map.
type DishController interface {
	// CreateDish creates a new dish
	CreateDish(c *gin.Context)
	// GetDishByID retrieves a dish by its ID
	GetDishByID(c *gin.Context)
	// ListDishes retrieves dishes matching the query filters
	ListDishes(c *gin.Context)
	// UpdateDish applies a partial update to a dish
	UpdateDish(c *gin.Context)
	// DeleteDish deletes a dish by its ID
	DeleteDish(c *gin.Context)
}

type controller struct {
	service services.DishService
}

// NewDishController creates a new instance of DishController
func NewDishController(service services.DishService) *controller {
	return &controller{service: service}
}

// CreateDish godoc
// @Summary Create a new dish
// @Description Create a new dish with a unique name
// @Tags dishes
// @Accept json
// @Produce json
// @Param dish body schemas.DishCreate true "Dish to create"
// @Success 201 {object} schemas.DishPublic
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/dishes [post]
func (c *controller) CreateDish(ctx *gin.Context) {
	var input schemas.DishCreate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid request body",
			"details": schemas.ValidationDetails(err),
		})
		return
	}

	dish, err := c.service.CreateDish(ctx.Request.Context(), input)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusCreated, dish)
}

// GetDishByID godoc
// @Summary Get dish by ID
// @Description Get a single dish by its ID
// @Tags dishes
// @Produce json
// @Param id path int true "Dish ID"
// @Success 200 {object} schemas.DishPublic
// @Failure 404 {object} map[string]string
// @Router /api/v1/dishes/{id} [get]
func (c *controller) GetDishByID(ctx *gin.Context) {
	id, ok := dishID(ctx)
	if !ok {
		return
	}

	dish, err := c.service.GetDishByID(ctx.Request.Context(), id)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, dish)
}

// ListDishes godoc
// @Summary List dishes
// @Description List dishes with optional search, ordering and pagination
// @Tags dishes
// @Produce json
// @Param search query string false "Substring match on name (case-insensitive)"
// @Param order_by query string false "Order column" Enums(id, name, created_at)
// @Param direction query string false "Order direction" Enums(asc, desc)
// @Param limit query int false "Page size (1-500)"
// @Param offset query int false "Page offset"
// @Success 200 {array} schemas.DishPublic
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/dishes [get]
func (c *controller) ListDishes(ctx *gin.Context) {
	var params schemas.DishQueryParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid query parameters",
			"details": schemas.ValidationDetails(err),
		})
		return
	}

	dishes, err := c.service.ListDishes(ctx.Request.Context(), params)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, dishes)
}

// UpdateDish godoc
// @Summary Update a dish
// @Description Partially update a dish; absent fields stay unchanged, a null description clears it
// @Tags dishes
// @Accept json
// @Produce json
// @Param id path int true "Dish ID"
// @Param dish body schemas.DishUpdate true "Fields to update"
// @Success 200 {object} schemas.DishPublic
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/dishes/{id} [patch]
func (c *controller) UpdateDish(ctx *gin.Context) {
	id, ok := dishID(ctx)
	if !ok {
		return
	}

	var input schemas.DishUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid request body",
			"details": schemas.ValidationDetails(err),
		})
		return
	}
	if details := input.Validate(); details != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid request body",
			"details": details,
		})
		return
	}

	dish, err := c.service.UpdateDish(ctx.Request.Context(), id, input)
	if err != nil {
		ctx.Error(err)
		return
	}
	ctx.JSON(http.StatusOK, dish)
}

// DeleteDish godoc
// @Summary Delete a dish
// @Description Delete a dish by its ID
// @Tags dishes
// @Param id path int true "Dish ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/dishes/{id} [delete]
func (c *controller) DeleteDish(ctx *gin.Context) {
	id, ok := dishID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteDish(ctx.Request.Context(), id); err != nil {
		ctx.Error(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// dishID parses the :id path parameter, writing a 422 on failure.
func dishID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid dish ID",
			"details": map[string]string{"id": "must be an integer"},
		})
		return 0, false
	}
	return id, true
}
