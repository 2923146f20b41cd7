package services

import (
	"errors"

	"autosalon/internal/models"
	"autosalon/internal/repositories"
)

// Validators bundles the cross-entity existence and uniqueness checks shared
// by the create and update flows of every service.
type Validators struct {
	users repositories.Repository[models.User]
	cars  repositories.Repository[models.Car]
}

// NewValidators creates the validator set over the given repositories.
func NewValidators(users repositories.Repository[models.User], cars repositories.Repository[models.Car]) *Validators {
	return &Validators{
		users: users,
		cars:  cars,
	}
}

// UserExistsWithRole fetches the user by id and compares its role against the
// expected one. The record is returned whenever the user exists so callers can
// name the actual role in their error message.
func (v *Validators) UserExistsWithRole(userID uint, expected models.Role) (found bool, roleMatches bool, user *models.User, err error) {
	user, err = v.users.GetOne(repositories.Filter{"id": userID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, false, nil, nil
		}
		return false, false, nil, err
	}
	return true, user.Role == expected, user, nil
}

// CarExists fetches the car by id. A nil car with nil error means absent.
func (v *Validators) CarExists(carID uint) (*models.Car, error) {
	car, err := v.cars.GetOne(repositories.Filter{"id": carID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return car, nil
}

// EmailIsUnique reports whether no other user holds the email. excludeID
// skips the record being updated so a user keeping their own email is not
// flagged as a conflict with themself; pass 0 on create.
func (v *Validators) EmailIsUnique(email string, excludeID uint) (bool, error) {
	existing, err := v.users.GetOne(repositories.Filter{"email": email})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return existing.ID == excludeID, nil
}

// VINIsUnique is the car-side counterpart of EmailIsUnique.
func (v *Validators) VINIsUnique(vin string, excludeID uint) (bool, error) {
	existing, err := v.cars.GetOne(repositories.Filter{"vin_number": vin})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return existing.ID == excludeID, nil
}
