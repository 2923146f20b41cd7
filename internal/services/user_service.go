package services

import (
	"errors"
	"fmt"

	"autosalon/internal/models"
	"autosalon/internal/repositories"

	"gorm.io/gorm"
)

// UserService handles business logic related to users.
type UserService struct {
	repo       repositories.Repository[models.User]
	validators *Validators
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.Repository[models.User], validators *Validators) *UserService {
	return &UserService{
		repo:       repo,
		validators: validators,
	}
}

// Create registers a new user after checking the email is not taken.
func (s *UserService) Create(user *models.User) (*Envelope[*models.User], error) {
	unique, err := s.validators.EmailIsUnique(user.Email, 0)
	if err != nil {
		return nil, Unexpected(err)
	}
	if !unique {
		return nil, Conflict("User with email: '%s' already exists.", user.Email)
	}

	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("User with email: '%s' already exists.", user.Email)
		}
		return nil, Unexpected(err)
	}
	return success("User created.", user), nil
}

// GetOneByFilter retrieves a single user matching the filter (id or email).
func (s *UserService) GetOneByFilter(filter repositories.Filter) (*Envelope[*models.User], error) {
	user, err := s.repo.GetOne(filter)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("User not found.")
		}
		return nil, Unexpected(err)
	}
	return success("User found.", user), nil
}

// GetManyByRole retrieves all users holding the given role. An empty result
// is a valid outcome reported through an error-status envelope.
func (s *UserService) GetManyByRole(role models.Role) (*Envelope[[]models.User], error) {
	users, err := s.repo.GetMany(repositories.Filter{"role": role})
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(users) == 0 {
		return emptyResult("No users found.", users), nil
	}
	return success("Users found.", users), nil
}

// GetAll retrieves every user.
func (s *UserService) GetAll() (*Envelope[[]models.User], error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, Unexpected(err)
	}
	if len(users) == 0 {
		return emptyResult("No users found.", users), nil
	}
	return success("All users found.", users), nil
}

// UpdateByID applies a partial update to the user with the given id.
// Only supplied fields change; a changed email must not collide with
// another user's.
func (s *UserService) UpdateByID(userID uint, fields repositories.Filter) (*Envelope[*models.User], error) {
	if len(fields) == 0 {
		return nil, BadRequest("Payload can not be empty.")
	}

	if _, err := s.repo.GetOne(repositories.Filter{"id": userID}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("User with id: '%d' does not exist.", userID)
		}
		return nil, Unexpected(err)
	}

	if email, ok := fields["email"].(string); ok {
		unique, err := s.validators.EmailIsUnique(email, userID)
		if err != nil {
			return nil, Unexpected(err)
		}
		if !unique {
			return nil, Conflict("User with email: '%s' already exists.", email)
		}
	}

	updated, err := s.repo.Update(userID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("User with id: '%d' does not exist.", userID)
		}
		return nil, Unexpected(err)
	}
	return success("User updated.", updated), nil
}

// DeleteByID removes the user with the given id.
func (s *UserService) DeleteByID(userID uint) (*StatusMessage, error) {
	if err := s.repo.Delete(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("No user with id: '%d' found.", userID)
		}
		return nil, Unexpected(err)
	}
	return &StatusMessage{
		Status:  statusSuccess,
		Message: fmt.Sprintf("User with id %d deleted.", userID),
	}, nil
}
