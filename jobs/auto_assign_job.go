package jobs

import (
	"errors"
	"log"
	"time"

	"localbookr-server/config"
	"localbookr-server/database"
	"localbookr-server/models"
	"localbookr-server/services"
)

// AutoAssignJob periodically sweeps stale PENDING bookings and assigns the
// best available provider to each. Bookings with no eligible provider are
// parked as WAITING for an admin to handle.
type AutoAssignJob struct {
	stopChan chan bool
}

// NewAutoAssignJob creates a new auto-assignment job
func NewAutoAssignJob() *AutoAssignJob {
	return &AutoAssignJob{
		stopChan: make(chan bool),
	}
}

// Start begins the auto-assignment job
func (j *AutoAssignJob) Start() {
	go j.run()
	log.Println("🚀 Auto-assignment job started")
}

// Stop stops the auto-assignment job
func (j *AutoAssignJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Auto-assignment job stopped")
}

// run executes the auto-assignment job
func (j *AutoAssignJob) run() {
	ticker := time.NewTicker(config.AppConfig.Assignment.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.Scan()
		case <-j.stopChan:
			return
		}
	}
}

// Scan finds PENDING bookings older than the staleness threshold and tries
// to assign each one. Per-booking failures are logged and skipped so one bad
// booking never blocks the rest; a booking left PENDING is retried on the
// next tick, which is safe because assignment is guarded at the database.
func (j *AutoAssignJob) Scan() (assigned, waiting int) {
	cutoff := time.Now().Add(-config.AppConfig.Assignment.StaleAfter)

	var staleBookings []models.Booking
	err := database.DB.
		Where("status = ? AND created_at <= ?", models.BookingStatusPending, cutoff).
		Order("created_at ASC").
		Find(&staleBookings).Error
	if err != nil {
		log.Printf("❌ Error scanning stale bookings: %v", err)
		return 0, 0
	}

	if len(staleBookings) == 0 {
		return 0, 0
	}

	log.Printf("⏰ Found %d stale pending bookings", len(staleBookings))

	for _, booking := range staleBookings {
		_, err := services.AutoAssign(booking.ID)
		switch {
		case err == nil:
			assigned++
			log.Printf("✅ Auto-assigned booking %d", booking.ID)
		case errors.Is(err, services.ErrNoEligibleProvider):
			waiting++
			log.Printf("⏳ No provider for booking %d, marked waiting", booking.ID)
		case errors.Is(err, services.ErrConflict):
			// someone else moved it first, nothing to do
		default:
			log.Printf("❌ Failed to auto-assign booking %d: %v", booking.ID, err)
		}
	}

	return assigned, waiting
}

// IsStale reports whether a booking created at the given time has waited
// long enough to qualify for an auto-assignment sweep.
func IsStale(createdAt, now time.Time, staleAfter time.Duration) bool {
	return !createdAt.After(now.Add(-staleAfter))
}
