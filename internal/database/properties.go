package database

import (
	"strings"

	"gorm.io/gorm"

	"seazone/server/internal/models"
)

func (d *Database) CreateProperty(property *models.Property) error {
	return d.db.Create(property).Error
}

func (d *Database) GetPropertyByID(id int64) (*models.Property, error) {
	var property models.Property
	if err := d.db.First(&property, "property_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// FilterProperties applies the optional listing criteria conjunctively
// and paginates with offset/limit. Substring matches are
// case-insensitive; max price and min capacity are inclusive bounds.
func (d *Database) FilterProperties(filter models.PropertyFilter) ([]models.Property, error) {
	query := d.db.Model(&models.Property{})

	if filter.Street != "" {
		query = query.Where("LOWER(address_street) LIKE ?", contains(filter.Street))
	}
	if filter.Neighborhood != "" {
		query = query.Where("LOWER(address_neighborhood) LIKE ?", contains(filter.Neighborhood))
	}
	if filter.City != "" {
		query = query.Where("LOWER(address_city) LIKE ?", contains(filter.City))
	}
	if filter.State != "" {
		query = query.Where("LOWER(address_state) LIKE ?", contains(filter.State))
	}
	if filter.MaxPrice != nil {
		query = query.Where("price_per_night <= ?", *filter.MaxPrice)
	}
	if filter.MinCapacity != nil {
		query = query.Where("capacity >= ?", *filter.MinCapacity)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = models.DefaultPageSize
	}

	var properties []models.Property
	err := query.Offset(filter.Skip).Limit(limit).Find(&properties).Error
	return properties, err
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// GetAvailableProperties returns every property with no reservation
// overlapping the range under the exclusive-bounds predicate
// (start_date < end AND end_date > start). The admission check uses
// inclusive bounds, so the two sides disagree about ranges that merely
// touch on a boundary day; that asymmetry is long-standing observed
// behavior and is kept as-is.
func (d *Database) GetAvailableProperties(start, end models.Date) ([]models.Property, error) {
	booked := d.db.Model(&models.Reservation{}).
		Distinct("property_id").
		Where("start_date < ? AND end_date > ?", end, start)

	var properties []models.Property
	err := d.db.Where("property_id NOT IN (?)", booked).Find(&properties).Error
	return properties, err
}

// UpdateProperty applies the non-nil fields of update and returns the
// refreshed record. Missing ids surface gorm.ErrRecordNotFound.
func (d *Database) UpdateProperty(id int64, update models.PropertyUpdate) (*models.Property, error) {
	property, err := d.GetPropertyByID(id)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if update.Title != nil {
		changes["title"] = *update.Title
	}
	if update.AddressStreet != nil {
		changes["address_street"] = *update.AddressStreet
	}
	if update.AddressNumber != nil {
		changes["address_number"] = *update.AddressNumber
	}
	if update.AddressNeighborhood != nil {
		changes["address_neighborhood"] = *update.AddressNeighborhood
	}
	if update.AddressCity != nil {
		changes["address_city"] = *update.AddressCity
	}
	if update.AddressState != nil {
		changes["address_state"] = *update.AddressState
	}
	if update.Country != nil {
		changes["country"] = *update.Country
	}
	if update.Rooms != nil {
		changes["rooms"] = *update.Rooms
	}
	if update.Capacity != nil {
		changes["capacity"] = *update.Capacity
	}
	if update.PricePerNight != nil {
		changes["price_per_night"] = *update.PricePerNight
	}

	if len(changes) > 0 {
		if err := d.db.Model(property).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return property, nil
}

// DeleteProperty removes the property. Reservations referencing it are
// left in place; cascading is deliberately not performed.
func (d *Database) DeleteProperty(id int64) error {
	result := d.db.Delete(&models.Property{}, "property_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
