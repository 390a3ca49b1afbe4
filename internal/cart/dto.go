package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/fremed/fremed-backend/pkg/db/models"
)

// ItemDTO is one cart line with its denormalized product snapshot.
type ItemDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductCode string    `json:"product_code"`
	UnitPrice   int       `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	LineTotal   int       `json:"line_total"`
	AddedAt     time.Time `json:"added_at"`
}

// CartDTO is the API-facing cart shape.
type CartDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	Items     []ItemDTO `json:"items"`
	ItemCount int       `json:"item_count"`
	Subtotal  int       `json:"subtotal"`
}

func toCartDTO(userID uuid.UUID, items []models.CartItem) *CartDTO {
	dto := &CartDTO{
		UserID: userID,
		Items:  make([]ItemDTO, 0, len(items)),
	}
	for _, item := range items {
		dto.Items = append(dto.Items, ItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
			AddedAt:     item.CreatedAt,
		})
		dto.ItemCount += item.Quantity
		dto.Subtotal += item.LineTotal()
	}
	return dto
}
