package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/security"
)

// Service manages dashboard accounts.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*UserDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*UserDTO, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
}

// CreateInput holds the validated payload to create an account.
type CreateInput struct {
	CitizenID  string
	Name       string
	Email      string
	Password   string
	Role       enums.UserRole
	Department string
	Position   string
	IsActive   bool
}

// UpdateInput holds optional mutation values for an account. Password, when
// present, is re-hashed.
type UpdateInput struct {
	CitizenID  *string
	Name       *string
	Email      *string
	Password   *string
	Role       *enums.UserRole
	Department *string
	Position   *string
	IsActive   *bool
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService constructs a users service instance.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// Create hashes the password and inserts the account. The citizen ID must be
// unique across all accounts.
func (s *service) Create(ctx context.Context, input CreateInput) (*UserDTO, error) {
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown user role").
			WithDetails(map[string]any{"role": input.Role.String()})
	}

	count, err := s.repo.CountByCitizenID(ctx, input.CitizenID, uuid.Nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check citizen id")
	}
	if count > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "citizen id is already registered")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		CitizenID:    input.CitizenID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Department:   input.Department,
		Position:     input.Position,
		IsActive:     input.IsActive,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}
	return toUserDTO(created), nil
}

// Update applies the provided partial changes to an account.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if input.CitizenID != nil && *input.CitizenID != user.CitizenID {
		count, err := s.repo.CountByCitizenID(ctx, *input.CitizenID, user.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check citizen id")
		}
		if count > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "citizen id is already registered")
		}
		user.CitizenID = *input.CitizenID
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown user role").
				WithDetails(map[string]any{"role": input.Role.String()})
		}
		user.Role = *input.Role
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Position != nil {
		user.Position = *input.Position
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return toUserDTO(saved), nil
}

// Delete removes an account.
func (s *service) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete user")
	}
	return nil
}

// Get loads a single account.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return toUserDTO(user), nil
}

// List returns every account.
func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *toUserDTO(&users[i]))
	}
	return dtos, nil
}
