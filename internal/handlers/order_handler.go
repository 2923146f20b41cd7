package handlers

import (
	"log"

	"autosalon/internal/models"
	"autosalon/internal/repositories"
	"autosalon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
// The filter routes must precede the :id route.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/create", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetAllOrders)
	orderRoutes.Get("/status/:status", h.HandleGetOrdersByStatus)
	orderRoutes.Get("/customer_id/:customer_id", h.HandleGetOrdersByCustomerID)
	orderRoutes.Get("/salesperson_id/:salesperson_id", h.HandleGetOrdersBySalespersonID)
	orderRoutes.Get("/car_id/:car_id", h.HandleGetOrdersByCarID)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/patch/:order_id", h.HandleUpdateOrder)
	orderRoutes.Delete("/delete/:order_id", h.HandleDeleteOrder)
}

// CreateOrderRequest is the creation payload for an order.
type CreateOrderRequest struct {
	UserID        uint               `json:"user_id" validate:"required"`
	CarID         uint               `json:"car_id" validate:"required"`
	SalespersonID uint               `json:"salesperson_id" validate:"required"`
	Status        models.OrderStatus `json:"status" validate:"omitempty,oneof=pending completed canceled"`
	Comments      string             `json:"comments" validate:"required"`
}

// UpdateOrderRequest is the partial-update payload for an order.
type UpdateOrderRequest struct {
	UserID        *uint               `json:"user_id"`
	CarID         *uint               `json:"car_id"`
	SalespersonID *uint               `json:"salesperson_id"`
	Status        *models.OrderStatus `json:"status" validate:"omitempty,oneof=pending completed canceled"`
	Comments      *string             `json:"comments"`
}

func (r *UpdateOrderRequest) fields() repositories.Filter {
	fields := repositories.Filter{}
	if r.UserID != nil {
		fields["user_id"] = *r.UserID
	}
	if r.CarID != nil {
		fields["car_id"] = *r.CarID
	}
	if r.SalespersonID != nil {
		fields["salesperson_id"] = *r.SalespersonID
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Comments != nil {
		fields["comments"] = *r.Comments
	}
	return fields
}

// HandleCreateOrder creates a new order after the consistency checks pass.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order := &models.Order{
		UserID:        req.UserID,
		CarID:         req.CarID,
		SalespersonID: req.SalespersonID,
		Status:        req.Status,
		Comments:      req.Comments,
	}
	envelope, err := h.service.Create(order)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetOrderByID retrieves a single order by id.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, paramErr := parseIDParam(c, "id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	envelope, err := h.service.GetByID(orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetOrdersByStatus retrieves all orders in the given status.
func (h *OrderHandler) HandleGetOrdersByStatus(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Params("status"))
	if !status.Valid() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": "Invalid order status. Expected one of: pending, completed, canceled.",
		})
	}
	envelope, err := h.service.GetByStatus(status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetOrdersByCustomerID retrieves all orders bought by a customer.
func (h *OrderHandler) HandleGetOrdersByCustomerID(c *fiber.Ctx) error {
	customerID, paramErr := parseIDParam(c, "customer_id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	envelope, err := h.service.GetByCustomerID(customerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetOrdersBySalespersonID retrieves all orders sold by a salesperson.
func (h *OrderHandler) HandleGetOrdersBySalespersonID(c *fiber.Ctx) error {
	salespersonID, paramErr := parseIDParam(c, "salesperson_id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	envelope, err := h.service.GetBySalespersonID(salespersonID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetOrdersByCarID retrieves all orders referencing a car.
func (h *OrderHandler) HandleGetOrdersByCarID(c *fiber.Ctx) error {
	carID, paramErr := parseIDParam(c, "car_id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	envelope, err := h.service.GetByCarID(carID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleGetAllOrders retrieves every order.
func (h *OrderHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	envelope, err := h.service.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleUpdateOrder applies a partial update to an order.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	orderID, paramErr := parseIDParam(c, "order_id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	envelope, err := h.service.UpdateByID(orderID, req.fields())
	if err != nil {
		log.Printf("Error updating order %d: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(envelope)
}

// HandleDeleteOrder removes an order by id.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID, paramErr := parseIDParam(c, "order_id")
	if paramErr != nil {
		return respondError(c, paramErr)
	}
	result, err := h.service.DeleteByID(orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
