package domain

import "time"

// GeoData is the location snapshot attached to users and copied into sessions.
type GeoData struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type User struct {
	UserID           string    `json:"user_id"`
	Geo              GeoData   `json:"geo_data"`
	RegistrationDate time.Time `json:"registration_date"`
	LastActive       time.Time `json:"last_active"`
}

type Subcategory struct {
	SubcategoryID string  `json:"subcategory_id"`
	Name          string  `json:"name"`
	ProfitMargin  float64 `json:"profit_margin"`
}

type Category struct {
	CategoryID    string        `json:"category_id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

// PricePoint is one entry of a product's price history, ordered by date.
type PricePoint struct {
	Price float64   `json:"price"`
	Date  time.Time `json:"date"`
}

// Product stock is mutated only through the inventory ledger once
// generation starts; everything else is frozen at bootstrap.
type Product struct {
	ProductID    string       `json:"product_id"`
	Name         string       `json:"name"`
	CategoryID   string       `json:"category_id"`
	BasePrice    float64      `json:"base_price"`
	CurrentStock int          `json:"current_stock"`
	IsActive     bool         `json:"is_active"`
	PriceHistory []PricePoint `json:"price_history"`
	CreationDate time.Time    `json:"creation_date"`
}
