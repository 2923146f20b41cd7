package handlers

import (
	"log"

	"autosalon/internal/models"
	"autosalon/internal/repositories"
	"autosalon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
// The email/ and role/ routes must precede the :id route.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/create", h.HandleCreateUser)
	userRoutes.Get("/", h.HandleGetAllUsers)
	userRoutes.Get("/email/:email", h.HandleGetUserByEmail)
	userRoutes.Get("/role/:role", h.HandleGetUsersByRole)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Patch("/patch/:id", h.HandleUpdateUser)
	userRoutes.Delete("/delete/:id", h.HandleDeleteUser)
}

// CreateUserRequest is the creation payload for a user.
type CreateUserRequest struct {
	Name    string      `json:"name" validate:"required"`
	Surname string      `json:"surname" validate:"required"`
	Email   string      `json:"email" validate:"required,email"`
	Role    models.Role `json:"role" validate:"required,oneof=customer manager admin"`
}

// UpdateUserRequest is the partial-update payload for a user. Only fields
// present in the body are applied.
type UpdateUserRequest struct {
	Name    *string      `json:"name" validate:"omitempty,min=1"`
	Surname *string      `json:"surname" validate:"omitempty,min=1"`
	Email   *string      `json:"email" validate:"omitempty,email"`
	Role    *models.Role `json:"role" validate:"omitempty,oneof=customer manager admin"`
}

func (r *UpdateUserRequest) fields() repositories.Filter {
	fields := repositories.Filter{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Surname != nil {
		fields["surname"] = *r.Surname
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Role != nil {
		fields["role"] = *r.Role
	}
	return fields
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := &models.User{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Role:    req.Role,
	}
	envelope, err := h.service.Create(user)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetUserByID retrieves a single user by id.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	userID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	envelope, err := h.service.GetOneByFilter(repositories.Filter{"id": userID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetUserByEmail retrieves a single user by email.
func (h *UserHandler) HandleGetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	envelope, err := h.service.GetOneByFilter(repositories.Filter{"email": email})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetUsersByRole retrieves all users holding the given role.
func (h *UserHandler) HandleGetUsersByRole(c *fiber.Ctx) error {
	role := models.Role(c.Params("role"))
	if !role.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid role. Expected one of: customer, manager, admin.",
		})
	}
	envelope, err := h.service.GetManyByRole(role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetAllUsers retrieves every user.
func (h *UserHandler) HandleGetAllUsers(c *fiber.Ctx) error {
	envelope, err := h.service.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleUpdateUser applies a partial update to a user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	userID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	envelope, err := h.service.UpdateByID(userID, req.fields())
	if err != nil {
		log.Printf("Error updating user %d: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleDeleteUser removes a user by id.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	userID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	result, err := h.service.DeleteByID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
