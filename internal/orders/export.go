package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/fremed/fremed-backend/pkg/db/models"
)

const exportDateLayout = "02/01/2006 15:04"

// renderExport produces the plain-text order sheet handed out by the
// download endpoint.
func renderExport(order *models.Order, now time.Time) string {
	var b strings.Builder

	b.WriteString("PHIEU DAT HANG / ORDER SHEET\n")
	b.WriteString(strings.Repeat("=", 48) + "\n\n")

	fmt.Fprintf(&b, "Ma don hang:   %s\n", order.OrderNumber)
	fmt.Fprintf(&b, "Trang thai:    %s\n", order.Status)
	fmt.Fprintf(&b, "Ngay tao:      %s\n\n", order.CreatedAt.Format(exportDateLayout))

	fmt.Fprintf(&b, "Khach hang:    %s (%s)\n", order.CustomerName, order.CustomerID)
	fmt.Fprintf(&b, "Dien thoai:    %s\n", order.CustomerPhone)
	fmt.Fprintf(&b, "Dia chi:       %s\n", order.CustomerAddress)
	fmt.Fprintf(&b, "Giao hang:     %s\n", order.DeliveryOption)
	if order.DeliveryDate != nil {
		fmt.Fprintf(&b, "Ngay giao:     %s\n", order.DeliveryDate.Format("02/01/2006"))
	}

	b.WriteString("\nChi tiet don hang:\n")
	b.WriteString(strings.Repeat("-", 48) + "\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%-28s %3d x %9s = %10s\n",
			item.ProductName, item.Quantity, formatVND(item.UnitPrice), formatVND(item.TotalPrice))
	}
	b.WriteString(strings.Repeat("-", 48) + "\n")

	fmt.Fprintf(&b, "%-34s %12s\n", "Tam tinh:", formatVND(order.TotalAmount))
	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, "%-34s -%11s\n", "Giam gia:", formatVND(order.DiscountAmount))
	}
	fmt.Fprintf(&b, "%-34s %12s\n", "Phi giao hang:", formatVND(order.DeliveryFee))
	fmt.Fprintf(&b, "%-34s %12s\n", "Tong cong:", formatVND(order.FinalAmount))

	if order.Notes != nil && *order.Notes != "" {
		fmt.Fprintf(&b, "\nGhi chu: %s\n", *order.Notes)
	}

	b.WriteString("\n" + strings.Repeat("=", 48) + "\n")
	fmt.Fprintf(&b, "Xuat ngay %s\n", now.Format(exportDateLayout))

	return b.String()
}

// formatVND renders an amount with dot thousand separators, e.g. 1.250.000d.
func formatVND(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ".") + "d"
	if negative {
		out = "-" + out
	}
	return out
}
