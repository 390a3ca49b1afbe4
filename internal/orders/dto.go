package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/enums"
)

// ItemDTO is one frozen order line.
type ItemDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int       `json:"unit_price"`
	TotalPrice  int       `json:"total_price"`
}

// OrderDTO is the API-facing order shape.
type OrderDTO struct {
	ID              uuid.UUID            `json:"id"`
	OrderNumber     string               `json:"order_number"`
	CustomerID      string               `json:"customer_id"`
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerAddress string               `json:"customer_address"`
	Items           []ItemDTO            `json:"items"`
	TotalAmount     int                  `json:"total_amount"`
	DiscountAmount  int                  `json:"discount_amount"`
	DeliveryFee     int                  `json:"delivery_fee"`
	FinalAmount     int                  `json:"final_amount"`
	DeliveryOption  enums.DeliveryOption `json:"delivery_option"`
	PromotionID     *uuid.UUID           `json:"promotion_id,omitempty"`
	Status          enums.OrderStatus    `json:"status"`
	Notes           *string              `json:"notes,omitempty"`
	DeliveryDate    *time.Time           `json:"delivery_date,omitempty"`
	CreatedBy       uuid.UUID            `json:"created_by"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Items:           make([]ItemDTO, 0, len(order.Items)),
		TotalAmount:     order.TotalAmount,
		DiscountAmount:  order.DiscountAmount,
		DeliveryFee:     order.DeliveryFee,
		FinalAmount:     order.FinalAmount,
		DeliveryOption:  order.DeliveryOption,
		PromotionID:     order.PromotionID,
		Status:          order.Status,
		Notes:           order.Notes,
		DeliveryDate:    order.DeliveryDate,
		CreatedBy:       order.CreatedBy,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return dto
}
