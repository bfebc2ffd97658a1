package models

import "github.com/shopspring/decimal"

type Reservation struct {
	ID            int64           `gorm:"column:reservation_id;primaryKey" json:"reservation_id"`
	ClientName    string          `gorm:"size:255;not null" json:"client_name"`
	ClientEmail   string          `gorm:"size:255;not null;index" json:"client_email"`
	StartDate     Date            `gorm:"type:date;not null" json:"start_date"`
	EndDate       Date            `gorm:"type:date;not null" json:"end_date"`
	GuestQuantity int             `gorm:"not null" json:"guest_quantity"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_value"`
	PropertyID    int64           `gorm:"not null;index" json:"property_id"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// ReservationUpdate carries a partial update. Nil fields are left
// unchanged. The update path does not re-run the admission checks, so
// changed dates or guest counts are accepted as-is.
type ReservationUpdate struct {
	ClientName    *string `json:"client_name"`
	ClientEmail   *string `json:"client_email"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	GuestQuantity *int    `json:"guest_quantity"`
}
