package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seazone/server/internal/database"
	"seazone/server/internal/models"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeSender) SendMessage(message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func TestRunDigestSendsSummary(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	property := &models.Property{
		Title:               "Beach House",
		AddressStreet:       "Ocean Drive",
		AddressNumber:       "42",
		AddressNeighborhood: "Seaside",
		AddressCity:         "Florianopolis",
		AddressState:        "SC",
		Country:             "Brazil",
		Rooms:               3,
		Capacity:            4,
		PricePerNight:       decimal.NewFromInt(100),
	}
	require.NoError(t, db.CreateProperty(property))

	reservation := &models.Reservation{
		ClientName:    "Ana Souza",
		ClientEmail:   "ana@example.com",
		StartDate:     models.NewDate(2024, time.December, 10),
		EndDate:       models.NewDate(2024, time.December, 15),
		GuestQuantity: 2,
		TotalValue:    decimal.NewFromInt(500),
		PropertyID:    property.ID,
	}
	require.NoError(t, database.CreateReservation(db.GetDB(), reservation))

	sender := &fakeSender{}
	s := NewScheduler(db, sender, logrus.New())

	// A day with a check-in produces one digest message.
	s.runDigest(time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Check-ins for 2024-12-10")
	assert.Contains(t, sender.messages[0], "Ana Souza")
	assert.Contains(t, sender.messages[0], "until 2024-12-15")

	// A day without check-ins sends nothing.
	s.runDigest(time.Date(2024, time.December, 11, 0, 0, 0, 0, time.UTC))
	assert.Len(t, sender.messages, 1)
}

func TestSchedulerStartStop(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.NewDatabase(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	s := NewScheduler(db, &fakeSender{}, logrus.New())
	s.Start()
	s.Stop()
}
