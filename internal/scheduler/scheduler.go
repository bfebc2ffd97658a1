// Package scheduler runs the daily check-in digest: at midnight it
// collects the reservations starting that day and sends a summary
// through the notification sender.
package scheduler

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"seazone/server/internal/database"
	"seazone/server/internal/models"
	"seazone/server/internal/notify"
)

// Scheduler manages periodic execution of the digest job.
type Scheduler struct {
	db       *database.Database
	sender   notify.Sender
	logger   *logrus.Logger
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

func NewScheduler(db *database.Database, sender notify.Sender, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		db:       db,
		sender:   sender,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled tasks.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop halts the scheduler and waits for any running job.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case t := <-ticker.C:
			if t.Hour() == 0 && t.Minute() == 0 {
				s.runDigest(t)
			}
		}
	}
}

// runDigest sends the check-in summary for the day that just started.
func (s *Scheduler) runDigest(t time.Time) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	day := models.NewDate(t.Year(), t.Month(), t.Day())

	reservations, err := s.db.GetReservationsStartingOn(day)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load check-ins for digest")
		return
	}
	if len(reservations) == 0 {
		s.logger.WithField("day", day.String()).Debug("No check-ins today, skipping digest")
		return
	}

	if err := s.sender.SendMessage(digestMessage(day, reservations)); err != nil {
		s.logger.WithError(err).Error("Failed to send check-in digest")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"day":       day.String(),
		"check_ins": len(reservations),
	}).Info("Check-in digest sent")
}

func digestMessage(day models.Date, reservations []models.Reservation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Check-ins for %s</b>\n", day)
	for _, r := range reservations {
		fmt.Fprintf(&b, "\n• Property #%d — %s, %d guests, until %s",
			r.PropertyID, r.ClientName, r.GuestQuantity, r.EndDate)
	}
	return b.String()
}
