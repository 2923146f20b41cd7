package models

import "time"

// Order represents a sale of a car by a salesperson to a customer.
// UserID is the buying customer, SalespersonID the selling manager.
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	Comments      string      `json:"comments" gorm:"type:varchar(255);not null"`
	UserID        uint        `json:"user_id" gorm:"not null"`
	CarID         uint        `json:"car_id" gorm:"not null"`
	SalespersonID uint        `json:"salesperson_id" gorm:"not null"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Associations exist only so migration emits the cascading foreign keys.
	User        *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Car         *Car  `json:"-" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
	Salesperson *User `json:"-" gorm:"foreignKey:SalespersonID;constraint:OnDelete:CASCADE"`
}

// OrderFields lists the filterable/updatable columns of the orders table.
func OrderFields() []string {
	return []string{"id", "status", "comments", "user_id", "car_id", "salesperson_id"}
}
