package services

import (
	"errors"
	"fmt"

	"autosalon/internal/models"
	"autosalon/internal/repositories"

	"gorm.io/gorm"
)

// CarService handles business logic related to cars.
type CarService struct {
	repo       repositories.Repository[models.Car]
	validators *Validators
}

// NewCarService creates a new CarService.
func NewCarService(repo repositories.Repository[models.Car], validators *Validators) *CarService {
	return &CarService{
		repo:       repo,
		validators: validators,
	}
}

// Add registers a new car after checking the VIN is not taken.
func (s *CarService) Add(car *models.Car) (*Envelope[*models.Car], error) {
	unique, err := s.validators.VINIsUnique(car.VinNumber, 0)
	if err != nil {
		return nil, Unexpected(err)
	}
	if !unique {
		return nil, Conflict("Car with vin_number: '%s' already exists.", car.VinNumber)
	}

	if err := s.repo.Create(car); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Car with vin_number: '%s' already exists.", car.VinNumber)
		}
		return nil, Unexpected(err)
	}
	return success("Car created.", car), nil
}

// GetOneByFilter retrieves a single car matching the filter (id or vin_number).
func (s *CarService) GetOneByFilter(filter repositories.Filter) (*Envelope[*models.Car], error) {
	car, err := s.repo.GetOne(filter)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Car not found.")
		}
		return nil, Unexpected(err)
	}
	return success("Car found.", car), nil
}

// GetManyByFilter retrieves all cars matching the filter (engine or
// transmission). An empty result is reported through an error-status envelope.
func (s *CarService) GetManyByFilter(filter repositories.Filter) (*Envelope[[]models.Car], error) {
	cars, err := s.repo.GetMany(filter)
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(cars) == 0 {
		return emptyResult("No cars found.", cars), nil
	}
	return success("Cars found.", cars), nil
}

// GetAll retrieves every car.
func (s *CarService) GetAll() (*Envelope[[]models.Car], error) {
	cars, err := s.repo.GetAll()
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(cars) == 0 {
		return emptyResult("No cars found.", cars), nil
	}
	return success("All cars found.", cars), nil
}

// UpdateByID applies a partial update to the car with the given id. A changed
// VIN must not collide with another car's.
func (s *CarService) UpdateByID(carID uint, fields repositories.Filter) (*Envelope[*models.Car], error) {
	if len(fields) == 0 {
		return nil, BadRequest("Payload can not be empty.")
	}

	if _, err := s.repo.GetOne(repositories.Filter{"id": carID}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Car with id: '%d' does not exist.", carID)
		}
		return nil, Unexpected(err)
	}

	if vin, ok := fields["vin_number"].(string); ok {
		unique, err := s.validators.VINIsUnique(vin, carID)
		if err != nil {
			return nil, Unexpected(err)
		}
		if !unique {
			return nil, Conflict("Car with vin_number: '%s' already exists.", vin)
		}
	}

	updated, err := s.repo.Update(carID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Car with id: '%d' does not exist.", carID)
		}
		return nil, Unexpected(err)
	}
	return success("Car updated.", updated), nil
}

// DeleteByID removes the car with the given id.
func (s *CarService) DeleteByID(carID uint) (*StatusMessage, error) {
	if err := s.repo.Delete(carID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("No car with id: '%d' found.", carID)
		}
		return nil, Unexpected(err)
	}
	return &StatusMessage{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Car with id %d deleted.", carID),
	}, nil
}
