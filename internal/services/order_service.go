package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"autosalon/internal/models"
	"autosalon/internal/repositories"
	"autosalon/pkg/rabbitmq"

	"github.com/google/uuid"
)

// EventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; a nil publisher disables eventing.
type EventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

// OrderService handles business logic related to orders. Every create and
// update runs a single ordered pass through the cross-entity checks,
// short-circuiting at the first failed invariant; nothing is written unless
// all of them pass.
type OrderService struct {
	repo       repositories.Repository[models.Order]
	validators *Validators
	publisher  EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo repositories.Repository[models.Order], validators *Validators, publisher EventPublisher) *OrderService {
	return &OrderService{
		repo:       repo,
		validators: validators,
		publisher:  publisher,
	}
}

// checkCustomer verifies the referenced user exists and holds the customer role.
func (s *OrderService) checkCustomer(userID uint) error {
	found, matches, user, err := s.validators.UserExistsWithRole(userID, models.RoleCustomer)
	if err != nil {
		return Unexpected(err)
	}
	if !found {
		return NotFound("Customer with ID: '%d' was not found.", userID)
	}
	if !matches {
		return BadRequest("The user with ID: '%d' is a %s, not a customer.", userID, user.Role)
	}
	return nil
}

// checkSalesperson verifies the referenced user exists and holds the manager role.
func (s *OrderService) checkSalesperson(userID uint) error {
	found, matches, user, err := s.validators.UserExistsWithRole(userID, models.RoleManager)
	if err != nil {
		return Unexpected(err)
	}
	if !found {
		return NotFound("Salesperson with ID: '%d' was not found.", userID)
	}
	if !matches {
		return BadRequest("The user with ID: '%d' is a %s, not a manager.", userID, user.Role)
	}
	return nil
}

// checkCar verifies the referenced car exists.
func (s *OrderService) checkCar(carID uint) error {
	car, err := s.validators.CarExists(carID)
	if err != nil {
		return Unexpected(err)
	}
	if car == nil {
		return NotFound("Car with ID: '%d' was not found.", carID)
	}
	return nil
}

func checkSelfAssignment(customerID, salespersonID uint) error {
	if customerID == salespersonID {
		return BadRequest("The user with ID: '%d' can not be both the customer and the salesperson.", customerID)
	}
	return nil
}

// Create persists a new order once all four invariants hold: the customer
// exists with role customer, the salesperson exists with role manager, the
// car exists, and the customer is not the salesperson.
func (s *OrderService) Create(order *models.Order) (*Envelope[*models.Order], error) {
	if err := s.checkCustomer(order.UserID); err != nil {
		return nil, err
	}
	if err := s.checkSalesperson(order.SalespersonID); err != nil {
		return nil, err
	}
	if err := s.checkCar(order.CarID); err != nil {
		return nil, err
	}
	if err := checkSelfAssignment(order.UserID, order.SalespersonID); err != nil {
		return nil, err
	}

	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := s.repo.Create(order); err != nil {
		return nil, Unexpected(err)
	}

	s.publish(rabbitmq.OrderCreated, order)
	return success("Order created.", order), nil
}

// GetByID retrieves a single order.
func (s *OrderService) GetByID(orderID uint) (*Envelope[*models.Order], error) {
	order, err := s.repo.GetOne(repositories.Filter{"id": orderID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Order not found.")
		}
		return nil, Unexpected(err)
	}
	return success("Order found.", order), nil
}

// GetByStatus retrieves all orders in the given status.
func (s *OrderService) GetByStatus(status models.OrderStatus) (*Envelope[[]models.Order], error) {
	orders, err := s.repo.GetMany(repositories.Filter{"status": status})
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(orders) == 0 {
		return emptyResult(fmt.Sprintf("No orders with status: '%s' found.", status), orders), nil
	}
	return success(fmt.Sprintf("Orders with status: '%s' found.", status), orders), nil
}

// GetByCustomerID retrieves all orders bought by the given customer. The
// referenced user must exist and hold the customer role; an empty result set
// after that check is a valid outcome.
func (s *OrderService) GetByCustomerID(customerID uint) (*Envelope[[]models.Order], error) {
	if err := s.checkCustomer(customerID); err != nil {
		return nil, err
	}
	orders, err := s.repo.GetMany(repositories.Filter{"user_id": customerID})
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(orders) == 0 {
		return emptyResult(fmt.Sprintf("No orders for customer with ID: '%d' found.", customerID), orders), nil
	}
	return success(fmt.Sprintf("Orders for customer with ID: '%d' found.", customerID), orders), nil
}

// GetBySalespersonID retrieves all orders sold by the given salesperson.
func (s *OrderService) GetBySalespersonID(salespersonID uint) (*Envelope[[]models.Order], error) {
	if err := s.checkSalesperson(salespersonID); err != nil {
		return nil, err
	}
	orders, err := s.repo.GetMany(repositories.Filter{"salesperson_id": salespersonID})
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(orders) == 0 {
		return emptyResult(fmt.Sprintf("No orders for salesperson with ID: '%d' found.", salespersonID), orders), nil
	}
	return success(fmt.Sprintf("Orders for salesperson with ID: '%d' found.", salespersonID), orders), nil
}

// GetByCarID retrieves all orders referencing the given car.
func (s *OrderService) GetByCarID(carID uint) (*Envelope[[]models.Order], error) {
	if err := s.checkCar(carID); err != nil {
		return nil, err
	}
	orders, err := s.repo.GetMany(repositories.Filter{"car_id": carID})
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(orders) == 0 {
		return emptyResult(fmt.Sprintf("No orders for car with ID: '%d' found.", carID), orders), nil
	}
	return success(fmt.Sprintf("Orders for car with ID: '%d' found.", carID), orders), nil
}

// GetAll retrieves every order.
func (s *OrderService) GetAll() (*Envelope[[]models.Order], error) {
	orders, err := s.repo.GetAll()
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(orders) == 0 {
		return emptyResult("No orders found.", orders), nil
	}
	return success("All orders found.", orders), nil
}

// UpdateByID applies a partial update to an order. Each referenced id present
// in the payload is re-validated against its invariant; the self-assignment
// check runs against the effective customer/salesperson pair after falling
// back to the stored values for ids not being changed. An empty payload is
// rejected before any lookup.
func (s *OrderService) UpdateByID(orderID uint, fields repositories.Filter) (*Envelope[*models.Order], error) {
	if len(fields) == 0 {
		return nil, BadRequest("Payload can not be empty.")
	}

	existing, err := s.repo.GetOne(repositories.Filter{"id": orderID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Order with id: '%d' does not exist.", orderID)
		}
		return nil, Unexpected(err)
	}

	effectiveCustomer := existing.UserID
	effectiveSalesperson := existing.SalespersonID
	pairTouched := false

	if v, ok := fields["user_id"]; ok {
		customerID := v.(uint)
		if err := s.checkCustomer(customerID); err != nil {
			return nil, err
		}
		effectiveCustomer = customerID
		pairTouched = true
	}
	if v, ok := fields["salesperson_id"]; ok {
		salespersonID := v.(uint)
		if err := s.checkSalesperson(salespersonID); err != nil {
			return nil, err
		}
		effectiveSalesperson = salespersonID
		pairTouched = true
	}
	if v, ok := fields["car_id"]; ok {
		if err := s.checkCar(v.(uint)); err != nil {
			return nil, err
		}
	}
	if pairTouched {
		if err := checkSelfAssignment(effectiveCustomer, effectiveSalesperson); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(orderID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Order with id: '%d' does not exist.", orderID)
		}
		return nil, Unexpected(err)
	}

	s.publish(rabbitmq.OrderUpdated, updated)
	return success(fmt.Sprintf("Order with id: '%d' successfully updated.", orderID), updated), nil
}

// DeleteByID removes the order with the given id.
func (s *OrderService) DeleteByID(orderID uint) (*StatusMessage, error) {
	existing, err := s.repo.GetOne(repositories.Filter{"id": orderID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("No order with id: '%d' found.", orderID)
		}
		return nil, Unexpected(err)
	}

	if err := s.repo.Delete(orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("No order with id: '%d' found.", orderID)
		}
		return nil, Unexpected(err)
	}

	s.publish(rabbitmq.OrderDeleted, existing)
	return &StatusMessage{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Order with id %d deleted.", orderID),
	}, nil
}

// publish sends an order lifecycle event. Publishing is best-effort: a broker
// failure is logged and never fails the request.
func (s *OrderService) publish(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.OrderEvent{
		EventID:       uuid.New().String(),
		Type:          eventType,
		OrderID:       order.ID,
		UserID:        order.UserID,
		CarID:         order.CarID,
		SalespersonID: order.SalespersonID,
		Status:        string(order.Status),
		OccurredAt:    time.Now(),
	}
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}
