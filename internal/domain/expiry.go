// internal/domain/expiry.go
package domain

import (
	"math"
	"time"
)

// ExpiryStatus labels a batch by days-to-expiry. Derived, never stored.
type ExpiryStatus string

const (
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryCritical ExpiryStatus = "critical"
	ExpiryWarning  ExpiryStatus = "warning"
	ExpirySafe     ExpiryStatus = "safe"
)

// DefaultAlertDays is the default expiry alert window.
const DefaultAlertDays = 30

var expirySeverity = map[ExpiryStatus]int{
	ExpiryExpired:  3,
	ExpiryCritical: 2,
	ExpiryWarning:  1,
	ExpirySafe:     0,
}

// Severity ranks statuses: expired > critical > warning > safe.
func (s ExpiryStatus) Severity() int {
	return expirySeverity[s]
}

// ExpiryClassification is the result of classifying one batch.
type ExpiryClassification struct {
	DaysToExpiry     int          `json:"days_to_expiry"`
	Status           ExpiryStatus `json:"status"`
	SuggestedForSale bool         `json:"suggested_for_sale"`
}

// ClassifyExpiry labels an expiry date relative to now. Bands are inclusive
// on their lower bound: <0 expired, 0-7 critical, 8-alertDays warning,
// >alertDays safe. alertDays <= 0 falls back to DefaultAlertDays.
func ClassifyExpiry(expiryDate, now time.Time, alertDays int) ExpiryClassification {
	if alertDays <= 0 {
		alertDays = DefaultAlertDays
	}

	days := int(math.Ceil(expiryDate.Sub(now).Hours() / 24))

	var status ExpiryStatus
	switch {
	case days < 0:
		status = ExpiryExpired
	case days <= 7:
		status = ExpiryCritical
	case days <= alertDays:
		status = ExpiryWarning
	default:
		status = ExpirySafe
	}

	return ExpiryClassification{
		DaysToExpiry:     days,
		Status:           status,
		SuggestedForSale: status == ExpiryWarning || status == ExpiryCritical,
	}
}

// ParseExpiryStatus validates a status filter value.
func ParseExpiryStatus(s string) (ExpiryStatus, bool) {
	status := ExpiryStatus(s)
	_, ok := expirySeverity[status]
	return status, ok
}
