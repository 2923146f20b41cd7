package handlers

import (
	"log"

	"autosalon/internal/models"
	"autosalon/internal/repositories"
	"autosalon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CarHandler handles HTTP requests for cars.
type CarHandler struct {
	service  *services.CarService
	validate *validator.Validate
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(service *services.CarService) *CarHandler {
	return &CarHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the car routes with the Fiber app.
// The vin/engine/transmission routes must precede the :id route.
func (h *CarHandler) RegisterRoutes(router fiber.Router) {
	carRoutes := router.Group("/cars")
	carRoutes.Post("/add", h.HandleAddCar)
	carRoutes.Get("/", h.HandleGetAllCars)
	carRoutes.Get("/vin/:vin_number", h.HandleGetCarByVIN)
	carRoutes.Get("/engine/:engine_type", h.HandleGetCarsByEngine)
	carRoutes.Get("/transmission/:transmission_type", h.HandleGetCarsByTransmission)
	carRoutes.Get("/:id", h.HandleGetCarByID)
	carRoutes.Patch("/patch/:id", h.HandleUpdateCar)
	carRoutes.Delete("/delete/:id", h.HandleDeleteCar)
}

// CreateCarRequest is the creation payload for a car.
type CreateCarRequest struct {
	Brand        string                  `json:"brand" validate:"required"`
	Model        string                  `json:"model" validate:"required"`
	Price        int                     `json:"price" validate:"required,gt=0"`
	Year         int                     `json:"year" validate:"required,gte=1900,lte=2100"`
	Color        string                  `json:"color" validate:"required"`
	Mileage      int                     `json:"mileage" validate:"gte=0"`
	Transmission models.TransmissionType `json:"transmission" validate:"required,oneof=manual automatic"`
	Engine       models.EngineType       `json:"engine" validate:"required,oneof=gasoline electric diesel"`
	VinNumber    string                  `json:"vin_number" validate:"required,len=17"`
}

// UpdateCarRequest is the partial-update payload for a car.
type UpdateCarRequest struct {
	Brand        *string                  `json:"brand" validate:"omitempty,min=1"`
	Model        *string                  `json:"model" validate:"omitempty,min=1"`
	Price        *int                     `json:"price" validate:"omitempty,gt=0"`
	Year         *int                     `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Color        *string                  `json:"color" validate:"omitempty,min=1"`
	Mileage      *int                     `json:"mileage" validate:"omitempty,gte=0"`
	Transmission *models.TransmissionType `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	Engine       *models.EngineType       `json:"engine" validate:"omitempty,oneof=gasoline electric diesel"`
	VinNumber    *string                  `json:"vin_number" validate:"omitempty,len=17"`
}

func (r *UpdateCarRequest) fields() repositories.Filter {
	fields := repositories.Filter{}
	if r.Brand != nil {
		fields["brand"] = *r.Brand
	}
	if r.Model != nil {
		fields["model"] = *r.Model
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Year != nil {
		fields["year"] = *r.Year
	}
	if r.Color != nil {
		fields["color"] = *r.Color
	}
	if r.Mileage != nil {
		fields["mileage"] = *r.Mileage
	}
	if r.Transmission != nil {
		fields["transmission"] = *r.Transmission
	}
	if r.Engine != nil {
		fields["engine"] = *r.Engine
	}
	if r.VinNumber != nil {
		fields["vin_number"] = *r.VinNumber
	}
	return fields
}

// HandleAddCar creates a new car.
func (h *CarHandler) HandleAddCar(c *fiber.Ctx) error {
	var req CreateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	car := &models.Car{
		Brand:        req.Brand,
		Model:        req.Model,
		Price:        req.Price,
		Year:         req.Year,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Transmission: req.Transmission,
		Engine:       req.Engine,
		VinNumber:    req.VinNumber,
	}
	envelope, err := h.service.Add(car)
	if err != nil {
		log.Printf("Error adding car: %v", err)
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetCarByID retrieves a single car by id.
func (h *CarHandler) HandleGetCarByID(c *fiber.Ctx) error {
	carID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	envelope, err := h.service.GetOneByFilter(repositories.Filter{"id": carID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetCarByVIN retrieves a single car by VIN.
func (h *CarHandler) HandleGetCarByVIN(c *fiber.Ctx) error {
	vin := c.Params("vin_number")
	envelope, err := h.service.GetOneByFilter(repositories.Filter{"vin_number": vin})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetCarsByEngine retrieves all cars with the given engine type.
func (h *CarHandler) HandleGetCarsByEngine(c *fiber.Ctx) error {
	engine := models.EngineType(c.Params("engine_type"))
	if !engine.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid engine type. Expected one of: gasoline, electric, diesel.",
		})
	}
	envelope, err := h.service.GetManyByFilter(repositories.Filter{"engine": engine})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetCarsByTransmission retrieves all cars with the given transmission type.
func (h *CarHandler) HandleGetCarsByTransmission(c *fiber.Ctx) error {
	transmission := models.TransmissionType(c.Params("transmission_type"))
	if !transmission.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid transmission type. Expected one of: manual, automatic.",
		})
	}
	envelope, err := h.service.GetManyByFilter(repositories.Filter{"transmission": transmission})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetAllCars retrieves every car.
func (h *CarHandler) HandleGetAllCars(c *fiber.Ctx) error {
	envelope, err := h.service.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleUpdateCar applies a partial update to a car.
func (h *CarHandler) HandleUpdateCar(c *fiber.Ctx) error {
	carID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	var req UpdateCarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	envelope, err := h.service.UpdateByID(carID, req.fields())
	if err != nil {
		log.Printf("Error updating car %d: %v", carID, err)
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleDeleteCar removes a car by id.
func (h *CarHandler) HandleDeleteCar(c *fiber.Ctx) error {
	carID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	result, err := h.service.DeleteByID(carID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
