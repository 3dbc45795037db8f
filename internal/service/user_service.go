package service

import (
	"errors"
	"strings"

	"ppe-inventory-ws/internal/model"
	"ppe-inventory-ws/internal/repository"
	"ppe-inventory-ws/pkg/validator"

	"github.com/google/uuid"
)

var ErrNameAlreadySet = errors.New("display name was already customized")

// Default password for accounts an admin provisions without one. Users are
// expected to change it via reset-password on first login.
const defaultUserPassword = "ppe12345"

type UserService interface {
	UpsertUser(req *UpsertUserRequest, updaterEmail string) (*model.User, error)
	SetOwnName(userID uuid.UUID, name string) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
}

// UpsertUserRequest creates or updates a user keyed by email. Role, name and
// photo are merged onto the existing record when present.
type UpsertUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) UpsertUser(req *UpsertUserRequest, updaterEmail string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err == nil {
		existing.Role = req.Role
		if req.Name != "" {
			existing.FullName = req.Name
		}
		if req.PhotoURL != "" {
			existing.PhotoURL = req.PhotoURL
		}
		if req.Password != "" {
			if err := existing.SetPassword(req.Password); err != nil {
				return nil, errors.New("failed to hash password")
			}
		}
		existing.UpdatedBy = updaterEmail
		if err := s.userRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	user := &model.User{
		Email:    req.Email,
		FullName: name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = updaterEmail
	user.UpdatedBy = updaterEmail

	password := req.Password
	if password == "" {
		password = defaultUserPassword
	}
	if err := user.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetOwnName lets a user pick their display name once. Further changes go
// through an admin upsert.
func (s *userService) SetOwnName(userID uuid.UUID, name string) (*model.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.NameCustomized {
		return nil, ErrNameAlreadySet
	}

	user.FullName = strings.TrimSpace(name)
	user.NameCustomized = true
	user.UpdatedBy = user.Email
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}
