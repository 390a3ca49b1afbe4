package certificates

import (
	"fmt"
	"strings"
	"time"

	"github.com/fremed/fremed-backend/pkg/db/models"
)

const exportDateLayout = "02/01/2006"

// renderExport produces the plain-text certificate document handed out by the
// download endpoint.
func renderExport(certificate *models.Certificate, now time.Time) string {
	var b strings.Builder

	b.WriteString("GIAY CHUNG NHAN / CERTIFICATE\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "So chung nhan: %s\n", certificate.CertificateNumber)
	fmt.Fprintf(&b, "Tieu de:       %s\n", certificate.Title)
	if certificate.Description != "" {
		fmt.Fprintf(&b, "Mo ta:         %s\n", certificate.Description)
	}
	fmt.Fprintf(&b, "Co quan cap:   %s\n", certificate.IssuingAuthority)
	fmt.Fprintf(&b, "Ngay cap:      %s\n", certificate.IssueDate.Format(exportDateLayout))
	fmt.Fprintf(&b, "Ngay het han:  %s\n", certificate.ExpiryDate.Format(exportDateLayout))
	fmt.Fprintf(&b, "Trang thai:    %s\n", certificate.StatusAt(now))

	if len(certificate.ProductIDs) > 0 {
		b.WriteString("\nSan pham ap dung:\n")
		for _, id := range certificate.ProductIDs {
			fmt.Fprintf(&b, "  - %s\n", id)
		}
	}

	b.WriteString("\n" + strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Xuat ngay %s\n", now.Format(exportDateLayout))

	return b.String()
}
