package database

import "seazone/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.Property{},
		&models.Reservation{},
	)
}
