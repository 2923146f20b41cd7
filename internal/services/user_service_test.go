package services_test

import (
	"fmt"
	"testing"

	"autosalon/internal/models"
	"autosalon/internal/repositories"
	"autosalon/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newUserService(t *testing.T) *services.UserService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Car{}, &models.Order{}))

	userRepo := repositories.NewGORMRepository[models.User](db, models.UserFields())
	carRepo := repositories.NewGORMRepository[models.Car](db, models.CarFields())
	return services.NewUserService(userRepo, services.NewValidators(userRepo, carRepo))
}

func TestUserService_CreateAndFetch(t *testing.T) {
	svc := newUserService(t)

	envelope, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, "User created.", envelope.Message)
	assert.NotZero(t, envelope.Data.ID)

	fetched, err := svc.GetOneByFilter(repositories.Filter{"id": envelope.Data.ID})
	require.NoError(t, err)
	assert.Equal(t, "User found.", fetched.Message)
	assert.Equal(t, "lera@example.com", fetched.Data.Email)
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = svc.Create(&models.User{Name: "Vera", Surname: "Smirnova", Email: "lera@example.com", Role: models.RoleManager})
	require.Error(t, err)
	svcErr := err.(*services.Error)
	assert.Equal(t, 409, svcErr.Code)
	assert.Equal(t, "User with email: 'lera@example.com' already exists.", svcErr.Message)
}

func TestUserService_GetOneNotFound(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.GetOneByFilter(repositories.Filter{"email": "nobody@example.com"})
	require.Error(t, err)
	svcErr := err.(*services.Error)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, "User not found.", svcErr.Message)
}

func TestUserService_GetManyByRole(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	found, err := svc.GetManyByRole(models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "success", found.Status)
	assert.Equal(t, "Users found.", found.Message)
	assert.Len(t, found.Data, 1)

	empty, err := svc.GetManyByRole(models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "error", empty.Status)
	assert.Equal(t, "No users found.", empty.Message)
	assert.Empty(t, empty.Data)
}

func TestUserService_GetAll(t *testing.T) {
	svc := newUserService(t)

	empty, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "error", empty.Status)
	assert.Equal(t, "No users found.", empty.Message)

	_, err = svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Equal(t, "All users found.", all.Message)
	assert.Len(t, all.Data, 1)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc := newUserService(t)

	created, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	updated, err := svc.UpdateByID(created.Data.ID, repositories.Filter{"surname": "UpdatedSurname"})
	require.NoError(t, err)
	assert.Equal(t, "User updated.", updated.Message)
	assert.Equal(t, "UpdatedSurname", updated.Data.Surname)
	assert.Equal(t, "Lera", updated.Data.Name)
	assert.Equal(t, "lera@example.com", updated.Data.Email)
}

func TestUserService_UpdateKeepingOwnEmailIsNotAConflict(t *testing.T) {
	svc := newUserService(t)

	created, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	updated, err := svc.UpdateByID(created.Data.ID, repositories.Filter{"email": "lera@example.com", "name": "Valeria"})
	require.NoError(t, err)
	assert.Equal(t, "Valeria", updated.Data.Name)
}

func TestUserService_UpdateEmailCollision(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)
	second, err := svc.Create(&models.User{Name: "Boris", Surname: "Sokolov", Email: "boris@example.com", Role: models.RoleManager})
	require.NoError(t, err)

	_, err = svc.UpdateByID(second.Data.ID, repositories.Filter{"email": "lera@example.com"})
	require.Error(t, err)
	svcErr := err.(*services.Error)
	assert.Equal(t, 409, svcErr.Code)
	assert.Equal(t, "User with email: 'lera@example.com' already exists.", svcErr.Message)
}

func TestUserService_UpdateNonexistent(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.UpdateByID(9999999, repositories.Filter{"name": "Nobody"})
	require.Error(t, err)
	svcErr := err.(*services.Error)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, "User with id: '9999999' does not exist.", svcErr.Message)
}

func TestUserService_UpdateEmptyPayload(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.UpdateByID(1, repositories.Filter{})
	require.Error(t, err)
	assert.Equal(t, 400, err.(*services.Error).Code)
}

func TestUserService_DeleteByID(t *testing.T) {
	svc := newUserService(t)

	created, err := svc.Create(&models.User{Name: "Lera", Surname: "Novikova", Email: "lera@example.com", Role: models.RoleCustomer})
	require.NoError(t, err)

	result, err := svc.DeleteByID(created.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, fmt.Sprintf("User with id %d deleted.", created.Data.ID), result.Message)

	// Deleting the same id again reports absence, never a second success.
	_, err = svc.DeleteByID(created.Data.ID)
	require.Error(t, err)
	svcErr := err.(*services.Error)
	assert.Equal(t, 404, svcErr.Code)
	assert.Equal(t, fmt.Sprintf("No user with id: '%d' found.", created.Data.ID), svcErr.Message)
}
