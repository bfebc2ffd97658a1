package models

import "github.com/shopspring/decimal"

// DefaultPageSize is the listing page size used when no limit is given.
const DefaultPageSize = 10

type Property struct {
	ID                  int64           `gorm:"column:property_id;primaryKey" json:"property_id"`
	Title               string          `gorm:"size:255;not null" json:"title"`
	AddressStreet       string          `gorm:"size:255;not null" json:"address_street"`
	AddressNumber       string          `gorm:"size:255;not null" json:"address_number"`
	AddressNeighborhood string          `gorm:"size:255;not null" json:"address_neighborhood"`
	AddressCity         string          `gorm:"size:255;not null" json:"address_city"`
	AddressState        string          `gorm:"size:255;not null" json:"address_state"`
	Country             string          `gorm:"size:255;not null" json:"country"`
	Rooms               int             `gorm:"not null" json:"rooms"`
	Capacity            int             `gorm:"not null" json:"capacity"`
	PricePerNight       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_night"`

	Reservations []Reservation `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyUpdate carries a partial update. Nil fields are left
// unchanged.
type PropertyUpdate struct {
	Title               *string          `json:"title"`
	AddressStreet       *string          `json:"address_street"`
	AddressNumber       *string          `json:"address_number"`
	AddressNeighborhood *string          `json:"address_neighborhood"`
	AddressCity         *string          `json:"address_city"`
	AddressState        *string          `json:"address_state"`
	Country             *string          `json:"country"`
	Rooms               *int             `json:"rooms"`
	Capacity            *int             `json:"capacity"`
	PricePerNight       *decimal.Decimal `json:"price_per_night"`
}

// PropertyFilter holds the optional, conjunctive listing criteria.
// Zero-valued fields are not applied.
type PropertyFilter struct {
	Street       string
	Neighborhood string
	City         string
	State        string
	MaxPrice     *decimal.Decimal
	MinCapacity  *int
	Skip         int
	Limit        int
}
