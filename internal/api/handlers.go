package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"seazone/server/internal/booking"
	"seazone/server/internal/database"
	"seazone/server/internal/models"
	"seazone/server/internal/notify"
)

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	booking  *booking.Service
	notifier *notify.Queue
}

// PropertyRequest is the body of POST /properties/.
type PropertyRequest struct {
	Title               string          `json:"title" binding:"required"`
	AddressStreet       string          `json:"address_street" binding:"required"`
	AddressNumber       string          `json:"address_number" binding:"required"`
	AddressNeighborhood string          `json:"address_neighborhood" binding:"required"`
	AddressCity         string          `json:"address_city" binding:"required"`
	AddressState        string          `json:"address_state" binding:"required"`
	Country             string          `json:"country" binding:"required"`
	Rooms               int             `json:"rooms" binding:"required,gte=1"`
	Capacity            int             `json:"capacity" binding:"required,gte=1"`
	PricePerNight       decimal.Decimal `json:"price_per_night"`
}

// ReservationRequest is the body of POST /reservations/.
type ReservationRequest struct {
	ClientName    string      `json:"client_name" binding:"required"`
	ClientEmail   string      `json:"client_email" binding:"required,email"`
	StartDate     models.Date `json:"start_date"`
	EndDate       models.Date `json:"end_date"`
	GuestQuantity int         `json:"guest_quantity" binding:"required,gte=1"`
	PropertyID    int64       `json:"property_id" binding:"required"`
}

// NewHandler wires the request boundary. notifier may be nil when
// confirmation notifications are disabled.
func NewHandler(db *database.Database, logger *logrus.Logger, notifier *notify.Queue) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		logger:   logger,
		booking:  booking.NewService(db, logger),
		notifier: notifier,
	}
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse property request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if req.PricePerNight.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price_per_night must not be negative"})
		return
	}

	property := &models.Property{
		Title:               req.Title,
		AddressStreet:       req.AddressStreet,
		AddressNumber:       req.AddressNumber,
		AddressNeighborhood: req.AddressNeighborhood,
		AddressCity:         req.AddressCity,
		AddressState:        req.AddressState,
		Country:             req.Country,
		Rooms:               req.Rooms,
		Capacity:            req.Capacity,
		PricePerNight:       req.PricePerNight,
	}

	if err := h.db.CreateProperty(property); err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.JSON(http.StatusCreated, property)
}

func (h *Handler) ListProperties(c *gin.Context) {
	filter := models.PropertyFilter{
		Street:       c.Query("street"),
		Neighborhood: c.Query("neighborhood"),
		City:         c.Query("city"),
		State:        c.Query("state"),
		Skip:         queryInt(c, "skip", 0),
		Limit:        queryInt(c, "limit", models.DefaultPageSize),
	}

	if raw := c.Query("max_price"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		filter.MaxPrice = &maxPrice
	}
	if raw := c.Query("min_capacity"); raw != "" {
		minCapacity, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_capacity"})
			return
		}
		filter.MinCapacity = &minCapacity
	}

	properties, err := h.db.FilterProperties(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	start, err := models.ParseDate(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	end, err := models.ParseDate(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	properties, err := h.booking.AvailableProperties(start, end)
	if errors.Is(err, booking.ErrInvalidDateRange) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "End date must be after start date"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to query availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query availability"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	property, err := h.db.GetPropertyByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.PropertyUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.WithError(err).Error("Failed to parse property update")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	property, err := h.db.UpdateProperty(id, update)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update property"})
		return
	}

	c.JSON(http.StatusOK, property)
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.db.DeleteProperty(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete property"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse reservation request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	reservation, err := h.booking.CreateReservation(booking.AdmissionRequest{
		PropertyID:    req.PropertyID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		GuestQuantity: req.GuestQuantity,
	})
	switch {
	case errors.Is(err, booking.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Property not found"})
		return
	case errors.Is(err, booking.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Guests exceed capacity"})
		return
	case errors.Is(err, booking.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "End date must be after start date"})
		return
	case errors.Is(err, booking.ErrDateConflict):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Property not available for these dates"})
		return
	case err != nil:
		h.logger.WithError(err).Error("Failed to create reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	// Confirmation delivery is best effort and must never fail the
	// request; a full queue only logs.
	if h.notifier != nil {
		if err := h.notifier.Push(&notify.Event{Reservation: *reservation}); err != nil {
			h.logger.WithError(err).Warn("Failed to queue confirmation notification")
		}
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) ListReservations(c *gin.Context) {
	var (
		reservations []models.Reservation
		err          error
	)

	// At most one filter applies; the email filter wins when both are
	// given.
	switch {
	case c.Query("client_email") != "":
		reservations, err = h.db.GetReservationsByEmail(c.Query("client_email"))
	case c.Query("property_id") != "":
		var propertyID int64
		propertyID, err = strconv.ParseInt(c.Query("property_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property_id"})
			return
		}
		reservations, err = h.db.GetReservationsByProperty(propertyID)
	default:
		reservations, err = h.db.ListReservations(queryInt(c, "skip", 0), queryInt(c, "limit", models.DefaultPageSize))
	}

	if err != nil {
		h.logger.WithError(err).Error("Failed to list reservations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	reservation, err := h.db.GetReservationByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Reservation not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reservation"})
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation applies a partial update. Known limitation: changed
// dates or guest counts are NOT re-validated against capacity or
// overlapping reservations.
func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.ReservationUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.WithError(err).Error("Failed to parse reservation update")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	reservation, err := h.db.UpdateReservation(id, update)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Reservation not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to update reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.db.DeleteReservation(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Reservation not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to cancel reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// pathID parses the :id path parameter, writing the 400 response
// itself when the value is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id parameter"})
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, falling back to
// defaultValue when absent or malformed.
func queryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.DefaultQuery(key, strconv.Itoa(defaultValue))
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
