package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/api/middleware"
	"github.com/fremed/fremed-backend/api/responses"
	"github.com/fremed/fremed-backend/api/validators"
	ordersvc "github.com/fremed/fremed-backend/internal/orders"
	"github.com/fremed/fremed-backend/pkg/enums"
	pkgerrors "github.com/fremed/fremed-backend/pkg/errors"
	"github.com/fremed/fremed-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerID      string     `json:"customer_id" validate:"required,max=32"`
	CustomerName    string     `json:"customer_name" validate:"required,max=128"`
	CustomerPhone   string     `json:"customer_phone" validate:"required,max=20"`
	CustomerAddress string     `json:"customer_address" validate:"required,max=256"`
	DeliveryOption  string     `json:"delivery_option" validate:"required,oneof=standard express"`
	PromotionID     *string    `json:"promotion_id,omitempty" validate:"omitempty,uuid"`
	Notes           *string    `json:"notes,omitempty" validate:"omitempty,max=512"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type updateOrderRequest struct {
	CustomerName    *string    `json:"customer_name,omitempty" validate:"omitempty,max=128"`
	CustomerPhone   *string    `json:"customer_phone,omitempty" validate:"omitempty,max=20"`
	CustomerAddress *string    `json:"customer_address,omitempty" validate:"omitempty,max=256"`
	Notes           *string    `json:"notes,omitempty" validate:"omitempty,max=512"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
}

// OrderCheckout finalizes the caller's cart into an order.
func OrderCheckout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := cartUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivery, err := enums.ParseDeliveryOption(strings.TrimSpace(payload.DeliveryOption))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery option"))
			return
		}

		var promotionID *uuid.UUID
		if payload.PromotionID != nil {
			parsed, err := uuid.Parse(*payload.PromotionID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid promotion id"))
				return
			}
			promotionID = &parsed
		}

		order, err := svc.Checkout(r.Context(), ordersvc.CheckoutInput{
			UserID:          userID,
			CustomerID:      validators.SanitizeString(payload.CustomerID, 32),
			CustomerName:    validators.SanitizeString(payload.CustomerName, 128),
			CustomerPhone:   validators.SanitizeString(payload.CustomerPhone, 20),
			CustomerAddress: validators.SanitizeString(payload.CustomerAddress, 256),
			DeliveryOption:  delivery,
			PromotionID:     promotionID,
			Notes:           payload.Notes,
			DeliveryDate:    payload.DeliveryDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderNumber(ctx, order.OrderNumber)
			logg.Info(ctx, "order.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderList serves orders with optional status and creator filters.
func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter ordersvc.OrderFilter

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = &status
		}

		filter.Customer = validators.SanitizeString(r.URL.Query().Get("customer"), 128)

		createdBy, err := validators.ParseQueryUUID(r, "created_by")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.CreatedBy = createdBy

		if mine, err := validators.ParseQueryBool(r, "mine"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if mine {
			userID, err := cartUserID(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter.CreatedBy = &userID
		}

		orders, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// OrderDetail serves one order.
func OrderDetail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderUpdateStatus sets an order's status.
func OrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"order_number": order.OrderNumber,
				"status":       order.Status.String(),
				"actor":        middleware.UserIDFromContext(r.Context()),
			})
			logg.Info(ctx, "order.status_changed")
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderUpdate edits the mutable order metadata.
func OrderUpdate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Update(r.Context(), orderID, ordersvc.UpdateInput{
			CustomerName:    payload.CustomerName,
			CustomerPhone:   payload.CustomerPhone,
			CustomerAddress: payload.CustomerAddress,
			Notes:           payload.Notes,
			DeliveryDate:    payload.DeliveryDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderExport serves the plain-text order sheet.
func OrderExport(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Export(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteText(w, "order-"+orderID.String()+".txt", doc)
	}
}
