package enums

import "fmt"

// CertificateStatus is the presented state of a regulatory certificate.
// Active/expired are derived from the validity window; pending is an explicit
// override set while the paperwork is still in review.
type CertificateStatus string

const (
	CertificateStatusActive  CertificateStatus = "active"
	CertificateStatusExpired CertificateStatus = "expired"
	CertificateStatusPending CertificateStatus = "pending"
)

var validCertificateStatuses = []CertificateStatus{
	CertificateStatusActive,
	CertificateStatusExpired,
	CertificateStatusPending,
}

// String implements fmt.Stringer.
func (c CertificateStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CertificateStatus.
func (c CertificateStatus) IsValid() bool {
	for _, candidate := range validCertificateStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCertificateStatus converts raw input into a CertificateStatus.
func ParseCertificateStatus(value string) (CertificateStatus, error) {
	for _, candidate := range validCertificateStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid certificate status %q", value)
}
