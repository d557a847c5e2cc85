package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/what2eat/what2eat-api/internal/models"
	"github.com/what2eat/what2eat-api/internal/schemas"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// TranslateError matches the production connection so unique
	// violations surface the same way
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.SetupJoinTable(&models.Collection{}, "Dishes", &models.CollectionDishLink{}))
	require.NoError(t, db.SetupJoinTable(&models.Dish{}, "Collections", &models.CollectionDishLink{}))
	require.NoError(t, db.AutoMigrate(&models.Dish{}, &models.Collection{}))

	return db
}

func strPtr(s string) *string { return &s }

func defaultParams() schemas.DishQueryParams {
	return schemas.DishQueryParams{OrderBy: "id", Direction: "asc", Limit: 10}
}

func mustCreate(t *testing.T, repo DishRepository, name string, description *string) *models.Dish {
	dish, err := repo.Create(context.Background(), schemas.DishCreate{Name: name, Description: description})
	require.NoError(t, err)
	return dish
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))

	dish := mustCreate(t, repo, "Mapo Tofu", strPtr("spicy"))

	assert.NotZero(t, dish.ID)
	assert.Equal(t, "Mapo Tofu", dish.Name)
	require.NotNil(t, dish.Description)
	assert.Equal(t, "spicy", *dish.Description)
	assert.False(t, dish.CreatedAt.IsZero())
	assert.False(t, dish.UpdatedAt.IsZero())
}

func TestCreateDuplicateNamePropagatesUniqueViolation(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	mustCreate(t, repo, "Mapo Tofu", nil)

	_, err := repo.Create(context.Background(), schemas.DishCreate{Name: "Mapo Tofu"})

	require.Error(t, err)
	assert.True(t, models.IsUniqueViolation(err))
	// The repository must not translate; that is the service's job
	assert.Nil(t, models.GetDomainError(err))
}

func TestGetByIDAbsentReturnsNilSentinel(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))

	dish, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, dish)
}

func TestGetByIDReturnsStoredDish(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	created := mustCreate(t, repo, "Kung Pao Chicken", strPtr("peanuts"))

	dish, err := repo.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Equal(t, created.ID, dish.ID)
	assert.Equal(t, "Kung Pao Chicken", dish.Name)
}

func TestGetAllSearchIsCaseInsensitiveSubstring(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	mustCreate(t, repo, "Mapo Tofu", nil)
	mustCreate(t, repo, "Crispy Tofu", nil)
	mustCreate(t, repo, "Fried Rice", nil)

	params := defaultParams()
	params.Search = "TOFU"
	dishes, err := repo.GetAll(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, dishes, 2)
	for _, dish := range dishes {
		assert.Contains(t, dish.Name, "Tofu")
	}
}

func TestGetAllOrdersByRequestedColumnAndDirection(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	mustCreate(t, repo, "Banana Bread", nil)
	mustCreate(t, repo, "Apple Pie", nil)
	mustCreate(t, repo, "Cheesecake", nil)

	params := defaultParams()
	params.OrderBy = "name"
	params.Direction = "desc"
	dishes, err := repo.GetAll(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, dishes, 3)
	assert.Equal(t, "Cheesecake", dishes[0].Name)
	assert.Equal(t, "Banana Bread", dishes[1].Name)
	assert.Equal(t, "Apple Pie", dishes[2].Name)
}

func TestGetAllPaginationWindowsAreStable(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}
	for _, name := range names {
		mustCreate(t, repo, name, nil)
	}

	seen := map[string]bool{}
	for offset := 0; offset < len(names); offset += 2 {
		params := defaultParams()
		params.OrderBy = "name"
		params.Limit = 2
		params.Offset = offset
		page, err := repo.GetAll(context.Background(), params)
		require.NoError(t, err)
		for _, dish := range page {
			assert.False(t, seen[dish.Name], "dish %s appeared in two pages", dish.Name)
			seen[dish.Name] = true
		}
	}
	assert.Len(t, seen, len(names))
}

func TestUpdateDescriptionLeavesNameUnchanged(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	created := mustCreate(t, repo, "Mapo Tofu", strPtr("spicy"))

	update := schemas.DishUpdate{
		Description: schemas.Optional[string]{Value: "very spicy", Present: true},
	}
	dish, err := repo.Update(context.Background(), created.ID, update)

	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Equal(t, "Mapo Tofu", dish.Name)
	require.NotNil(t, dish.Description)
	assert.Equal(t, "very spicy", *dish.Description)
}

func TestUpdateNameLeavesDescriptionUnchanged(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	created := mustCreate(t, repo, "Mapo Tofu", strPtr("spicy"))

	update := schemas.DishUpdate{
		Name: schemas.Optional[string]{Value: "Mapo Tofu Deluxe", Present: true},
	}
	dish, err := repo.Update(context.Background(), created.ID, update)

	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Equal(t, "Mapo Tofu Deluxe", dish.Name)
	require.NotNil(t, dish.Description)
	assert.Equal(t, "spicy", *dish.Description)
}

func TestUpdateNullDescriptionClearsField(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	created := mustCreate(t, repo, "Mapo Tofu", strPtr("spicy"))

	update := schemas.DishUpdate{
		Description: schemas.Optional[string]{Present: true, Null: true},
	}
	dish, err := repo.Update(context.Background(), created.ID, update)

	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Nil(t, dish.Description)
}

func TestUpdateEmptyPatchReturnsCurrentState(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	created := mustCreate(t, repo, "Mapo Tofu", strPtr("spicy"))

	dish, err := repo.Update(context.Background(), created.ID, schemas.DishUpdate{})

	require.NoError(t, err)
	require.NotNil(t, dish)
	assert.Equal(t, "Mapo Tofu", dish.Name)
	require.NotNil(t, dish.Description)
	assert.Equal(t, "spicy", *dish.Description)
}

func TestUpdateAbsentReturnsNilSentinel(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))

	update := schemas.DishUpdate{
		Name: schemas.Optional[string]{Value: "Ghost Dish", Present: true},
	}
	dish, err := repo.Update(context.Background(), 42, update)

	require.NoError(t, err)
	assert.Nil(t, dish)
}

func TestUpdateDuplicateNamePropagatesUniqueViolation(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))
	mustCreate(t, repo, "Mapo Tofu", nil)
	other := mustCreate(t, repo, "Fried Rice", nil)

	update := schemas.DishUpdate{
		Name: schemas.Optional[string]{Value: "Mapo Tofu", Present: true},
	}
	_, err := repo.Update(context.Background(), other.ID, update)

	require.Error(t, err)
	assert.True(t, models.IsUniqueViolation(err))
}

func TestDeleteReturnsFalseWhenAbsent(t *testing.T) {
	repo := NewDishRepository(setupTestDB(t))

	deleted, err := repo.Delete(context.Background(), 42)

	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteRemovesDishAndJoinRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDishRepository(db)
	dish := mustCreate(t, repo, "Mapo Tofu", nil)

	favorites := models.Collection{Name: "Favorites"}
	weeknight := models.Collection{Name: "Weeknight"}
	require.NoError(t, db.Create(&favorites).Error)
	require.NoError(t, db.Create(&weeknight).Error)
	require.NoError(t, db.Model(&favorites).Association("Dishes").Append(dish))
	require.NoError(t, db.Model(&weeknight).Association("Dishes").Append(dish))

	var linkCount int64
	require.NoError(t, db.Model(&models.CollectionDishLink{}).Where("dish_id = ?", dish.ID).Count(&linkCount).Error)
	require.EqualValues(t, 2, linkCount)

	deleted, err := repo.Delete(context.Background(), dish.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// No dangling join rows may reference the deleted dish
	require.NoError(t, db.Model(&models.CollectionDishLink{}).Where("dish_id = ?", dish.ID).Count(&linkCount).Error)
	assert.EqualValues(t, 0, linkCount)

	// The collections themselves survive
	var collectionCount int64
	require.NoError(t, db.Model(&models.Collection{}).Count(&collectionCount).Error)
	assert.EqualValues(t, 2, collectionCount)
}
