package models

import "time"

// Car represents a vehicle offered by the dealership.
type Car struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Brand        string           `json:"brand" gorm:"type:varchar(255);not null"`
	Model        string           `json:"model" gorm:"type:varchar(255);not null"`
	Price        int              `json:"price" gorm:"not null"`
	Year         int              `json:"year" gorm:"not null"`
	Color        string           `json:"color" gorm:"type:varchar(50);not null"`
	Mileage      int              `json:"mileage" gorm:"not null"`
	Transmission TransmissionType `json:"transmission" gorm:"type:varchar(20);not null"`
	Engine       EngineType       `json:"engine" gorm:"type:varchar(20);not null"`
	VinNumber    string           `json:"vin_number" gorm:"uniqueIndex;type:varchar(17);not null"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CarFields lists the filterable/updatable columns of the cars table.
func CarFields() []string {
	return []string{"id", "brand", "model", "price", "year", "color", "mileage", "transmission", "engine", "vin_number"}
}
