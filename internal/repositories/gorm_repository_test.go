package repositories_test

import (
	"fmt"
	"testing"

	"autosalon/internal/models"
	"autosalon/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Car{}, &models.Order{}))
	return db
}

func newUserRepo(t *testing.T) *repositories.GORMRepository[models.User] {
	return repositories.NewGORMRepository[models.User](newTestDB(t), models.UserFields())
}

func TestGORMRepository_CreateAndGetOne(t *testing.T) {
	repo := newUserRepo(t)

	user := &models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	// Round-trip: fetching by id returns every field supplied at creation.
	got, err := repo.GetOne(repositories.Filter{"id": user.ID})
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Surname, got.Surname)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)

	got, err = repo.GetOne(repositories.Filter{"email": "lera@example.com"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestGORMRepository_GetOneNotFound(t *testing.T) {
	repo := newUserRepo(t)

	got, err := repo.GetOne(repositories.Filter{"id": uint(12345)})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMRepository_UnknownFilterColumn(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.GetOne(repositories.Filter{"nickname": "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")

	_, err = repo.Update(1, repositories.Filter{"password": "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")
}

func TestGORMRepository_GetManyAndGetAll(t *testing.T) {
	repo := newUserRepo(t)

	for i := 0; i < 3; i++ {
		role := models.RoleCustomer
		if i == 2 {
			role = models.RoleManager
		}
		require.NoError(t, repo.Create(&models.User{
			Name:    fmt.Sprintf("User%d", i),
			Surname: "Test",
			Email:   fmt.Sprintf("user%d@example.com", i),
			Role:    role,
		}))
	}

	customers, err := repo.GetMany(repositories.Filter{"role": models.RoleCustomer})
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	none, err := repo.GetMany(repositories.Filter{"role": models.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGORMRepository_PartialUpdatePreservesOtherFields(t *testing.T) {
	repo := newUserRepo(t)

	user := &models.User{Name: "Boris", Surname: "Sokolov", Email: "boris@example.com", Role: models.RoleManager}
	require.NoError(t, repo.Create(user))

	updated, err := repo.Update(user.ID, repositories.Filter{"surname": "Ivanov"})
	require.NoError(t, err)
	assert.Equal(t, "Ivanov", updated.Surname)
	// Omitted fields keep their prior values.
	assert.Equal(t, "Boris", updated.Name)
	assert.Equal(t, "boris@example.com", updated.Email)
	assert.Equal(t, models.RoleManager, updated.Role)
}

func TestGORMRepository_UpdateNotFound(t *testing.T) {
	repo := newUserRepo(t)

	updated, err := repo.Update(999, repositories.Filter{"name": "Nobody"})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMRepository_DeleteTwiceReportsNotFound(t *testing.T) {
	repo := newUserRepo(t)

	user := &models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer}
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.Delete(user.ID))
	// Deleting an already-deleted id reports absence every time.
	assert.ErrorIs(t, repo.Delete(user.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(user.ID), repositories.ErrNotFound)
}

func TestGORMRepository_DuplicateKeyBackstop(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMRepository[models.Car](db, models.CarFields())

	car := &models.Car{
		Brand: "Toyota", Model: "Camry", Price: 30000, Year: 2020, Color: "Blue",
		Mileage: 15000, Transmission: models.TransmissionAutomatic,
		Engine: models.EngineGasoline, VinNumber: "1HGCM82633A004352",
	}
	require.NoError(t, repo.Create(car))

	clash := &models.Car{
		Brand: "Honda", Model: "Accord", Price: 25000, Year: 2019, Color: "Red",
		Mileage: 5000, Transmission: models.TransmissionManual,
		Engine: models.EngineDiesel, VinNumber: "1HGCM82633A004352",
	}
	err := repo.Create(clash)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
