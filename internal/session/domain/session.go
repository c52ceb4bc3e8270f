// Package domain models one simulated user visit: an ordered page-view
// timeline with embedded cart state and a conversion decision.
package domain

import (
	"time"

	browsing "github.com/wyfcoding/ecomsynth/internal/browsing/domain"
)

// Conversion status, strongest first: a converted session completed a
// purchase, an abandoned one left items in the cart, a browsed one never
// carted anything.
const (
	StatusConverted = "converted"
	StatusAbandoned = "abandoned"
	StatusBrowsed   = "browsed"
)

// SessionGeo is a per-session copy of the user's geo data plus a generated
// IP address; the user record itself is never mutated.
type SessionGeo struct {
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	IPAddress string `json:"ip_address"`
}

type DeviceProfile struct {
	Type    string `json:"type"`
	OS      string `json:"os"`
	Browser string `json:"browser"`
}

// PageView timestamps are non-decreasing within a session and the view
// durations sum to the session duration.
type PageView struct {
	Timestamp    time.Time         `json:"timestamp"`
	PageType     browsing.PageType `json:"page_type"`
	ProductID    *string           `json:"product_id"`
	CategoryID   *string           `json:"category_id"`
	ViewDuration int               `json:"view_duration"`
}

// CartEntry freezes the unit price at the time of the first add; later
// catalog price changes do not touch it.
type CartEntry struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Session struct {
	SessionID        string               `json:"session_id"`
	UserID           string               `json:"user_id"`
	StartTime        time.Time            `json:"start_time"`
	EndTime          time.Time            `json:"end_time"`
	DurationSeconds  int                  `json:"duration_seconds"`
	Geo              SessionGeo           `json:"geo_data"`
	Device           DeviceProfile        `json:"device_profile"`
	ViewedProducts   []string             `json:"viewed_products"`
	PageViews        []PageView           `json:"page_views"`
	CartContents     map[string]CartEntry `json:"cart_contents"`
	ConversionStatus string               `json:"conversion_status"`
	Referrer         string               `json:"referrer"`
}

// ReachedCheckout reports whether any page view made it to checkout or
// confirmation, the precondition for conversion.
func (s *Session) ReachedCheckout() bool {
	for _, pv := range s.PageViews {
		if pv.PageType == browsing.PageCheckout || pv.PageType == browsing.PageConfirmation {
			return true
		}
	}
	return false
}
