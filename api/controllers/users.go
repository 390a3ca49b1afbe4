package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fremed/fremed-backend/api/responses"
	"github.com/fremed/fremed-backend/api/validators"
	usersvc "github.com/fremed/fremed-backend/internal/users"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/logger"
)

type createUserRequest struct {
	CitizenID  string `json:"citizen_id" validate:"required,min=9,max=12"`
	Name       string `json:"name" validate:"required,min=2,max=128"`
	Email      string `json:"email" validate:"omitempty,email,max=128"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Role       string `json:"role" validate:"required"`
	Department string `json:"department" validate:"max=128"`
	Position   string `json:"position" validate:"max=128"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

type updateUserRequest struct {
	CitizenID  *string `json:"citizen_id,omitempty" validate:"omitempty,min=9,max=12"`
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=128"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=128"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=128"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=128"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// UserList serves every dashboard account.
func UserList(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, users)
	}
}

// UserDetail serves one account.
func UserDetail(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UserCreate adds a dashboard account.
func UserCreate(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(strings.TrimSpace(payload.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		user, err := svc.Create(r.Context(), usersvc.CreateInput{
			CitizenID:  validators.SanitizeString(payload.CitizenID, 12),
			Name:       validators.SanitizeString(payload.Name, 128),
			Email:      validators.SanitizeString(payload.Email, 128),
			Password:   payload.Password,
			Role:       role,
			Department: validators.SanitizeString(payload.Department, 128),
			Position:   validators.SanitizeString(payload.Position, 128),
			IsActive:   isActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// UserUpdate applies a partial update to an account.
func UserUpdate(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUserRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := usersvc.UpdateInput{
			CitizenID:  payload.CitizenID,
			Name:       payload.Name,
			Email:      payload.Email,
			Password:   payload.Password,
			Department: payload.Department,
			Position:   payload.Position,
			IsActive:   payload.IsActive,
		}
		if payload.Role != nil {
			role, err := enums.ParseUserRole(strings.TrimSpace(*payload.Role))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
				return
			}
			input.Role = &role
		}

		user, err := svc.Update(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

// UserDelete removes an account.
func UserDelete(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParsePathUUID(chi.URLParam(r, "userId"), "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
