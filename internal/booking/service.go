// Package booking implements the reservation admission check: the
// decision procedure that accepts or rejects a candidate reservation
// and computes its price. It also answers date-range availability
// queries, which share the overlap machinery.
package booking

import (
	"errors"
	"os"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"seazone/server/internal/database"
	"seazone/server/internal/models"
)

// Rejection kinds. The boundary layer maps these to status codes and
// messages; the service itself knows nothing about transports.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrCapacityExceeded = errors.New("guests exceed capacity")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrDateConflict     = errors.New("property not available for these dates")
)

// AdmissionRequest is a candidate reservation.
type AdmissionRequest struct {
	PropertyID    int64
	ClientName    string
	ClientEmail   string
	StartDate     models.Date
	EndDate       models.Date
	GuestQuantity int
}

type Service struct {
	db     *database.Database
	logger *logrus.Logger
}

func NewService(db *database.Database, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Service{db: db, logger: logger}
}

// CreateReservation decides whether the candidate may be admitted and,
// if so, persists it with its computed total.
//
// Checks run in a fixed order: existence, capacity, date ordering,
// overlap. When several conditions are violated at once, the first
// failing check in that order is the one reported. The entire decision
// runs inside one transaction so a rejection leaves no trace in the
// store. Concurrent admissions for the same property are not serialized
// against each other beyond the store's default isolation.
func (s *Service) CreateReservation(req AdmissionRequest) (*models.Reservation, error) {
	var reservation *models.Reservation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, "property_id = ?", req.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}

		if req.GuestQuantity > property.Capacity {
			return ErrCapacityExceeded
		}

		if !req.EndDate.After(req.StartDate.Time) {
			return ErrInvalidDateRange
		}

		overlap, err := database.FindOverlapping(tx, req.PropertyID, req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		if overlap != nil {
			return ErrDateConflict
		}

		nights := req.StartDate.NightsUntil(req.EndDate)
		total := property.PricePerNight.Mul(decimal.NewFromInt(int64(nights)))

		reservation = &models.Reservation{
			ClientName:    req.ClientName,
			ClientEmail:   req.ClientEmail,
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			GuestQuantity: req.GuestQuantity,
			TotalValue:    total,
			PropertyID:    req.PropertyID,
		}
		return database.CreateReservation(tx, reservation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"property_id":    reservation.PropertyID,
		"total_value":    reservation.TotalValue.String(),
	}).Info("Reservation admitted")

	return reservation, nil
}

// AvailableProperties returns every property free over the range,
// rejecting inverted or empty ranges up front.
func (s *Service) AvailableProperties(start, end models.Date) ([]models.Property, error) {
	if !end.After(start.Time) {
		return nil, ErrInvalidDateRange
	}
	return s.db.GetAvailableProperties(start, end)
}
