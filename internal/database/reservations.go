package database

import (
	"errors"

	"gorm.io/gorm"

	"seazone/server/internal/models"
)

// CreateReservation inserts within the caller's transaction so the
// admission checks and the write form a single unit of work.
func CreateReservation(tx *gorm.DB, reservation *models.Reservation) error {
	return tx.Create(reservation).Error
}

// FindOverlapping probes for a reservation on the property whose range
// overlaps [start, end] under inclusive bounds: two ranges that touch
// on a single shared boundary day count as overlapping. Returns nil
// when the range is free.
func FindOverlapping(tx *gorm.DB, propertyID int64, start, end models.Date) (*models.Reservation, error) {
	var reservation models.Reservation
	err := tx.
		Where("property_id = ? AND end_date >= ? AND start_date <= ?", propertyID, start, end).
		First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (d *Database) GetReservationByID(id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := d.db.First(&reservation, "reservation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (d *Database) ListReservations(skip, limit int) ([]models.Reservation, error) {
	if limit <= 0 {
		limit = models.DefaultPageSize
	}
	var reservations []models.Reservation
	err := d.db.Offset(skip).Limit(limit).Find(&reservations).Error
	return reservations, err
}

func (d *Database) GetReservationsByEmail(email string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := d.db.Where("client_email = ?", email).Find(&reservations).Error
	return reservations, err
}

func (d *Database) GetReservationsByProperty(propertyID int64) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := d.db.Where("property_id = ?", propertyID).Find(&reservations).Error
	return reservations, err
}

// GetReservationsStartingOn returns the reservations checking in on the
// given day, used by the daily digest.
func (d *Database) GetReservationsStartingOn(day models.Date) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := d.db.Where("start_date = ?", day).Find(&reservations).Error
	return reservations, err
}

// UpdateReservation applies the non-nil fields of update. Capacity and
// overlap are not re-checked here; callers own that decision.
func (d *Database) UpdateReservation(id int64, update models.ReservationUpdate) (*models.Reservation, error) {
	reservation, err := d.GetReservationByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.ClientName != nil {
		changes["client_name"] = *update.ClientName
	}
	if update.ClientEmail != nil {
		changes["client_email"] = *update.ClientEmail
	}
	if update.StartDate != nil {
		changes["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		changes["end_date"] = *update.EndDate
	}
	if update.GuestQuantity != nil {
		changes["guest_quantity"] = *update.GuestQuantity
	}

	if len(changes) > 0 {
		if err := d.db.Model(reservation).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return reservation, nil
}

// DeleteReservation cancels the reservation, freeing its date range for
// future admission checks.
func (d *Database) DeleteReservation(id int64) error {
	result := d.db.Delete(&models.Reservation{}, "reservation_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
