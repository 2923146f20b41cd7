package models

// Role classifies a user. Customers place orders, managers handle them as
// salespersons, admins do neither.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// TransmissionType is a car's transmission kind.
type TransmissionType string

const (
	TransmissionManual    TransmissionType = "manual"
	TransmissionAutomatic TransmissionType = "automatic"
)

// Valid reports whether the transmission type is one of the known values.
func (t TransmissionType) Valid() bool {
	switch t {
	case TransmissionManual, TransmissionAutomatic:
		return true
	}
	return false
}

// EngineType is a car's engine kind.
type EngineType string

const (
	EngineGasoline EngineType = "gasoline"
	EngineElectric EngineType = "electric"
	EngineDiesel   EngineType = "diesel"
)

// Valid reports whether the engine type is one of the known values.
func (e EngineType) Valid() bool {
	switch e {
	case EngineGasoline, EngineElectric, EngineDiesel:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}
